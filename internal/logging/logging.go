// Package logging maps the engine's verbosity scale onto log/slog.
//
// The scale, from least to most verbose, is quiet, error, alert, print,
// debug and trace. Each step maps to a slog level; a logger built by New
// drops every record below the chosen threshold.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
)

// Levels used by the compiler and the interpreter.
const (
	LevelTrace = slog.LevelDebug - 4
	LevelDebug = slog.LevelDebug
	LevelPrint = slog.LevelInfo
	LevelAlert = slog.LevelWarn
	LevelError = slog.LevelError

	// LevelQuiet is above every level the engine logs at.
	LevelQuiet = slog.LevelError + 4
)

// Verbosity selects how much diagnostic output is produced.
type Verbosity int

// Verbosity values, in increasing order of output.
const (
	Quiet Verbosity = iota
	Error
	Alert
	Print
	Debug
	Trace
)

var verbosityNames = [...]string{
	Quiet: "quiet",
	Error: "error",
	Alert: "alert",
	Print: "print",
	Debug: "debug",
	Trace: "trace",
}

// String returns the lower-case name of v.
func (v Verbosity) String() string {
	if v >= Quiet && v <= Trace {
		return verbosityNames[v]
	}
	return fmt.Sprintf("Verbosity(%d)", int(v))
}

// Level returns the slog threshold for v.
func (v Verbosity) Level() slog.Level {
	switch {
	case v <= Quiet:
		return LevelQuiet
	case v == Error:
		return LevelError
	case v == Alert:
		return LevelAlert
	case v == Print:
		return LevelPrint
	case v == Debug:
		return LevelDebug
	default:
		return LevelTrace
	}
}

// ParseVerbosity parses a verbosity name or its numeric form 0-5.
func ParseVerbosity(s string) (Verbosity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for v, name := range verbosityNames {
		if s == name || s == fmt.Sprint(v) {
			return Verbosity(v), nil
		}
	}
	return Quiet, fmt.Errorf("unknown verbosity %q: must be one of %s", s, strings.Join(verbosityNames[:], ", "))
}

// Set implements pflag.Value.
func (v *Verbosity) Set(s string) error {
	parsed, err := ParseVerbosity(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Type implements pflag.Value.
func (v *Verbosity) Type() string { return "verbosity" }

var _ pflag.Value = (*Verbosity)(nil)

// UnmarshalText implements encoding.TextUnmarshaler for config files.
func (v *Verbosity) UnmarshalText(text []byte) error {
	return v.Set(string(text))
}

// New returns a text logger writing to w that drops records below v.
func New(w io.Writer, v Verbosity) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       v.Level(),
		ReplaceAttr: replaceLevel,
	}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// Enabled reports whether l emits records at level.
func Enabled(l *slog.Logger, level slog.Level) bool {
	return l.Enabled(context.Background(), level)
}

// replaceLevel names the levels slog does not know about.
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) != 0 {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	switch level {
	case LevelTrace:
		a.Value = slog.StringValue("TRACE")
	case LevelPrint:
		a.Value = slog.StringValue("PRINT")
	case LevelAlert:
		a.Value = slog.StringValue("ALERT")
	}
	return a
}
