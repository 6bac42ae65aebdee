// Package syntax compiles patterns into byte code.
//
// The pattern language is a sequence of terms:
//
//	^     start of text (STX)
//	$     end of text (ETX)
//	.     any byte (ANY)
//	\c    escaped byte: \a \b \t \r \n \v \f or one of \? \* \+ \^ \$ \. \\
//	      (a raw control byte such as TAB after \ stands for itself)
//	c     any other byte, matched literally (CHR)
//
// Any atom except an anchor may be followed by one quantifier: `?` (0 or 1),
// `*` (0 or more) or `+` (1 or more). Anchors are accepted anywhere in the
// pattern, not only at its ends; a `^` after a consuming atom can never
// match.
//
// The grammar is LL(1) with a one byte quantifier lookahead, so the compiler
// never backtracks.
package syntax

import (
	"context"
	"log/slog"

	"github.com/coregx/bcre/bytecode"
	"github.com/coregx/bcre/internal/cursor"
	"github.com/coregx/bcre/internal/logging"
)

// Compiler translates patterns into a caller-owned bytecode.Program.
//
// A Compiler is not safe for concurrent use, and its program must not be
// executed while Compile is running.
type Compiler struct {
	prog    *bytecode.Program
	logger  *slog.Logger
	debug   bool
	pattern cursor.Cursor
}

// NewCompiler returns a compiler emitting into prog.
// A nil logger discards diagnostics.
func NewCompiler(prog *bytecode.Program, logger *slog.Logger) *Compiler {
	return &Compiler{
		prog:   prog,
		logger: logging.OrDiscard(logger),
	}
}

// Compile compiles a pattern into a new program.
func Compile(pattern string) (*bytecode.Program, error) {
	prog := bytecode.NewProgram()
	if err := NewCompiler(prog, nil).Compile(pattern); err != nil {
		return nil, err
	}
	return prog, nil
}

// Compile replaces the program content with the compiled pattern.
//
// On success the program ends with RET. On failure it ends with ERR, the
// returned error is a *Error, and the program must not be executed.
func (c *Compiler) Compile(pattern string) error {
	c.begin(pattern)
	if err := c.expression(); err != nil {
		c.failure(err)
		return err
	}
	c.success()
	return nil
}

func (c *Compiler) begin(pattern string) {
	ctx := context.Background()
	c.debug = c.logger.Enabled(ctx, logging.LevelDebug)
	c.pattern = cursor.New(pattern)
	c.logger.Log(ctx, logging.LevelPrint, "compiling", "pattern", pattern)

	c.prog.Reset()
	c.emit(bytecode.OpNop, c.prog.EmitNop)
}

func (c *Compiler) success() {
	c.emit(bytecode.OpRet, c.prog.EmitRet)
	c.logger.Log(context.Background(), logging.LevelAlert, "the regular expression has been compiled",
		"size", c.prog.Len())
}

func (c *Compiler) failure(err error) {
	c.emit(bytecode.OpErr, c.prog.EmitErr)
	c.logger.Log(context.Background(), logging.LevelError, "the regular expression could not be compiled",
		"error", err)
}

func (c *Compiler) emit(op bytecode.Opcode, fn func()) {
	if c.debug {
		c.logger.Log(context.Background(), logging.LevelDebug, "emit", "op", op)
	}
	fn()
}

func (c *Compiler) emitChr(b byte) {
	if c.debug {
		c.logger.Log(context.Background(), logging.LevelDebug, "emit",
			"op", bytecode.OpChr, "byte", string(rune(b)))
	}
	c.prog.EmitChr(b)
}

func (c *Compiler) emitRep(minCount, maxCount uint32) {
	if c.debug {
		c.logger.Log(context.Background(), logging.LevelDebug, "emit",
			"op", bytecode.OpRep, "min", minCount, "max", maxCount)
	}
	c.prog.EmitRep(minCount, maxCount)
}

// expression := term*
func (c *Compiler) expression() error {
	for !c.pattern.AtEnd() {
		if err := c.term(); err != nil {
			return err
		}
	}
	return nil
}

// term := '^' | '$' | atom quantifier?
func (c *Compiler) term() error {
	pos := c.pattern.Pos()
	ch, _ := c.pattern.Peek()
	switch ch {
	case '?', '*', '+':
		return &Error{Code: ErrMissingRepeatArgument, Expr: string(ch), Pos: pos}
	case '^':
		c.pattern.Advance(1)
		c.emit(bytecode.OpStx, c.prog.EmitStx)
	case '$':
		c.pattern.Advance(1)
		c.emit(bytecode.OpEtx, c.prog.EmitEtx)
	case '.':
		c.pattern.Advance(1)
		c.quantifier()
		c.emit(bytecode.OpAny, c.prog.EmitAny)
	case '\\':
		return c.escape()
	case 0:
		return &Error{Code: ErrNulCharacter, Expr: `\x00`, Pos: pos}
	default:
		c.pattern.Advance(1)
		c.quantifier()
		c.emitChr(ch)
	}
	return nil
}

// quantifier consumes an optional `?`, `*` or `+` and emits the REP that
// governs the atom emitted right after it.
func (c *Compiler) quantifier() {
	ch, ok := c.pattern.Peek()
	if !ok {
		return
	}
	switch ch {
	case '?':
		c.emitRep(0, 1)
	case '*':
		c.emitRep(0, bytecode.Unbounded)
	case '+':
		c.emitRep(1, bytecode.Unbounded)
	default:
		return
	}
	c.pattern.Advance(1)
}

// escape compiles `\c` with an optional quantifier.
func (c *Compiler) escape() error {
	pos := c.pattern.Pos()
	c.pattern.Advance(1)

	ch, ok := c.pattern.Next()
	if !ok {
		return &Error{Code: ErrTrailingBackslash, Expr: `\`, Pos: pos}
	}
	resolved, ok := unescape(ch)
	if !ok {
		return &Error{Code: ErrInvalidEscape, Expr: `\` + string(rune(ch)), Pos: pos}
	}

	c.quantifier()
	c.emitChr(resolved)
	return nil
}

// unescape resolves the byte following a backslash.
func unescape(ch byte) (byte, bool) {
	switch ch {
	case 'a':
		return '\a', true
	case 'b':
		return '\b', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case 'n':
		return '\n', true
	case 'v':
		return '\v', true
	case 'f':
		return '\f', true
	case '?', '*', '+', '^', '$', '.', '\\',
		'\a', '\b', '\t', '\r', '\n', '\v', '\f':
		return ch, true
	default:
		return 0, false
	}
}

// IsMeta reports whether b has a special meaning in patterns.
func IsMeta(b byte) bool {
	switch b {
	case '?', '*', '+', '^', '$', '.', '\\':
		return true
	}
	return false
}
