package syntax

// ErrorCode describes a failure to compile a pattern.
type ErrorCode string

// Compile error codes.
const (
	// ErrMissingRepeatArgument is a quantifier with no atom before it,
	// e.g. a pattern starting with `*`.
	ErrMissingRepeatArgument ErrorCode = "missing argument to repetition operator"

	// ErrTrailingBackslash is a `\` at the very end of the pattern.
	ErrTrailingBackslash ErrorCode = "unexpected end of string when esc was expected"

	// ErrInvalidEscape is a `\` followed by a byte that is neither a control
	// letter (a b t r n v f) nor one of the meta characters ? * + ^ $ . \.
	ErrInvalidEscape ErrorCode = "invalid escape sequence"

	// ErrNulCharacter is a NUL byte in the pattern.
	ErrNulCharacter ErrorCode = "unexpected NUL character"
)

func (e ErrorCode) String() string {
	return string(e)
}

// Error describes a pattern that failed to compile.
//
// Expr is the offending fragment: the quantifier, the escape sequence or the
// character that could not be compiled. Pos is its byte offset in the pattern.
type Error struct {
	Code ErrorCode
	Expr string
	Pos  int
}

// Error returns the message in the regexp/syntax format.
func (e *Error) Error() string {
	return "error parsing regexp: " + e.Code.String() + ": `" + e.Expr + "`"
}
