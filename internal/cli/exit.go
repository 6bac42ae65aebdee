package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the bcre command.
const (
	ExitMatch     = 0 // The pattern matched
	ExitNoMatch   = 1 // The pattern did not match
	ExitUsage     = 2 // Bad flags, arguments, config file or pattern
	ExitExecution = 3 // The search failed: malformed program or step limit
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code
	Message string // Error message
	Err     error  // Underlying error (optional)
}

// Error returns the message, followed by the underlying error if any.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitMatch for nil and ExitUsage for errors that are not an
// ExitError, which cobra produces for bad flags and arguments.
func GetExitCode(err error) int {
	if err == nil {
		return ExitMatch
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}
