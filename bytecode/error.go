package bytecode

import (
	"errors"
	"fmt"
)

// Program integrity errors. A program produced by the compiler never
// triggers them; they indicate corrupt or hand-built byte code.
var (
	// ErrUnknownOpcode indicates an opcode outside the instruction set.
	ErrUnknownOpcode = errors.New("unexpected opcode")

	// ErrNotRepeatable indicates a REP followed by something other than ANY or CHR.
	ErrNotRepeatable = errors.New("unexpected non-repeatable opcode")

	// ErrTruncated indicates an operand that runs past the end of the program.
	ErrTruncated = errors.New("truncated instruction")
)

// IntegrityError reports malformed byte code at a given program counter.
type IntegrityError struct {
	Err error
	PC  int
	Op  Opcode
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("bytecode: integrity error at pc %04x (%s): %v", e.PC, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// IsIntegrityError reports whether err is, or wraps, an *IntegrityError.
func IsIntegrityError(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
