// Package meta implements the orchestrator that selects how a compiled
// program is searched.
//
// Every subject is searched by the backtracking interpreter in package vm.
// The orchestrator decides which start offsets the interpreter tries:
//   - all of them (UseBacktrack)
//   - only offset 0 for programs that begin with STX (UseAnchoredStart)
//   - only the candidates a literal prefilter reports (UsePrefilter)
//   - none, when finding a literal already proves a match (UseLiteral)
//
// All strategies report the same result for a given program and subject.
package meta

import (
	"log/slog"

	"github.com/coregx/bcre/vm"
)

// Config controls strategy selection and search limits.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // Always run the interpreter at every offset
//	engine, err := meta.CompileWithConfig("a+b", config)
type Config struct {
	// EnablePrefilter enables literal-based prefiltering.
	// When false, no prefilter is used even if literals are available.
	// Default: true
	EnablePrefilter bool

	// MinLiteralLen is the minimum length for prefilter literals.
	// Programs whose shortest prefix is shorter are not prefiltered.
	// Default: 1
	MinLiteralLen int

	// MaxLiterals limits the number of literals to extract for prefiltering.
	// Default: 64
	MaxLiterals int

	// MaxSteps caps the instructions executed by one search; exceeding it
	// fails the search with vm.ErrStepLimit. 0 is unlimited.
	// Default: 0
	MaxSteps int

	// MemoLimit is the largest failure memo, in bits, a search may
	// allocate. 0 disables memoization.
	// Default: vm.DefaultMemoLimit
	MemoLimit int

	// Logger receives compiler and interpreter diagnostics. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter: true,
		MinLiteralLen:   1,
		MaxLiterals:     64,
		MaxSteps:        0,
		MemoLimit:       vm.DefaultMemoLimit,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MinLiteralLen: 1 to 64
//   - MaxLiterals: 1 to 1,000
//   - MaxSteps: 0 or more
//   - MemoLimit: 0 to 1<<30
func (c Config) Validate() error {
	if c.EnablePrefilter {
		if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
			return &ConfigError{
				Field:   "MinLiteralLen",
				Message: "must be between 1 and 64",
			}
		}
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
	}

	if c.MaxSteps < 0 {
		return &ConfigError{
			Field:   "MaxSteps",
			Message: "must not be negative",
		}
	}

	if c.MemoLimit < 0 || c.MemoLimit > 1<<30 {
		return &ConfigError{
			Field:   "MemoLimit",
			Message: "must be between 0 and 1<<30",
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "regexp: invalid config: " + e.Field + ": " + e.Message
}
