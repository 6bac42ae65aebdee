// Package bcre provides a minimal regular expression engine that compiles
// patterns to byte code and runs them on a backtracking interpreter.
//
// The pattern language is deliberately small:
//   - any byte except the meta characters matches itself
//   - `.` matches any byte
//   - `^` and `$` match at the start and end of the subject
//   - `?`, `*` and `+` repeat the preceding byte or `.` greedily
//   - `\` escapes a meta character or names a control byte (\a \b \f \n \r \t \v)
//
// There are no groups, alternation or character classes. Matching is
// byte-oriented and only answers whether a match exists.
//
// Basic usage:
//
//	re, err := bcre.Compile(`a*ab`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.MatchString("aaab") {
//	    fmt.Println("matched!")
//	}
//
// Custom configuration:
//
//	config := bcre.DefaultConfig()
//	config.MaxSteps = 1_000_000 // Bound pathological backtracking
//	re, err := bcre.CompileWithConfig("a*a*a*b", config)
package bcre

import (
	"strings"

	"github.com/coregx/bcre/bytecode"
	"github.com/coregx/bcre/meta"
	"github.com/coregx/bcre/syntax"
)

// Regex represents a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := bcre.MustCompile(`hello`)
//	if re.Match([]byte("hello world")) {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Compile compiles a regular expression pattern.
//
// Returns a *syntax.Error if the pattern is invalid.
//
// Example:
//
//	re, err := bcre.Compile(`c.t`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// Example:
//
//	var dots = bcre.MustCompile(`\.+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("regexp: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := bcre.DefaultConfig()
//	config.Logger = slog.Default()
//	re, err := bcre.CompileWithConfig("a+b", config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// Match reports whether pattern matches anywhere in subject. It compiles the
// pattern on every call; use Compile for repeated matching.
func Match(pattern, subject string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchStringErr(subject)
}

// QuoteMeta returns a string that escapes all metacharacters inside the
// argument text; the returned string is a pattern matching the literal text.
// A NUL byte cannot be expressed and is left in place.
//
// Example:
//
//	escaped := bcre.QuoteMeta("1+1=2?")
//	// escaped = `1\+1=2\?`
func QuoteMeta(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if syntax.IsMeta(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + n)
	for i := 0; i < len(s); i++ {
		if syntax.IsMeta(s[i]) {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Match reports whether the byte slice b contains any match of the pattern.
// A search that fails with an error, such as an exhausted step budget,
// reports false; use MatchStringErr to observe the error.
func (r *Regex) Match(b []byte) bool {
	matched, _ := r.engine.IsMatch(string(b))
	return matched
}

// MatchString reports whether the string s contains any match of the pattern.
//
// Example:
//
//	re := bcre.MustCompile(`cat`)
//	re.MatchString("concatenate") // true
func (r *Regex) MatchString(s string) bool {
	matched, _ := r.engine.IsMatch(s)
	return matched
}

// MatchStringErr is MatchString that also returns the search error, which is
// vm.ErrStepLimit when Config.MaxSteps is exceeded.
func (r *Regex) MatchStringErr(s string) (bool, error) {
	return r.engine.IsMatch(s)
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// Program returns a copy of the compiled byte code.
func (r *Regex) Program() []byte {
	return append([]byte(nil), r.engine.Program()...)
}

// Disassemble returns a listing of the compiled byte code, one instruction
// per line.
func (r *Regex) Disassemble() string {
	var b strings.Builder
	// Compiled programs always decode.
	_ = bytecode.Disassemble(&b, r.engine.Program())
	return b.String()
}

// Strategy returns the search strategy selected for the pattern.
func (r *Regex) Strategy() meta.Strategy {
	return r.engine.Strategy()
}
