// Package vm executes byte code programs with a backtracking interpreter.
//
// Quantified atoms are matched greedily: a REP instruction first consumes as
// many bytes as its bounds and the subject allow, then runs the rest of the
// program for each repetition count from the greedy count down to its
// minimum, stopping at the first count for which the rest succeeds.
//
// Recursion only happens at REP instructions, so the call depth is bounded by
// the number of quantified atoms in the program. Without memoization the
// running time is exponential in the worst case, e.g. for `a*a*a*a*b`.
// With a memo limit set, failed (pc, position) pairs are remembered and the
// search runs in O(len(program) * len(subject)) steps per start offset.
package vm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/coregx/bcre/bytecode"
	"github.com/coregx/bcre/internal/conv"
	"github.com/coregx/bcre/internal/cursor"
	"github.com/coregx/bcre/internal/logging"
)

// ErrStepLimit is returned when a search executes more instructions than
// Options.MaxSteps allows.
var ErrStepLimit = errors.New("backtracking step limit exceeded")

// DefaultMemoLimit bounds the failure memo at 256KB (2M bits).
const DefaultMemoLimit = 256 * 1024 * 8

// Options tunes a Backtracker. The zero value is valid: no logging, no step
// limit, no memo.
type Options struct {
	// Logger receives the subject at print level and every executed
	// instruction at trace level. Nil discards.
	Logger *slog.Logger

	// MaxSteps caps the instructions executed by one search. 0 is unlimited.
	MaxSteps int

	// MemoLimit is the largest failure memo, in bits, a search may allocate.
	// A search needs len(program) * (len(subject)+1) bits; larger searches
	// run without a memo. 0 disables the memo.
	MemoLimit int
}

// Backtracker runs one program against any number of subjects.
//
// A Backtracker never writes to its program and keeps no state between
// calls, so it is safe for concurrent use as long as nobody else modifies
// the program bytes.
type Backtracker struct {
	code   []byte
	opts   Options
	logger *slog.Logger
}

// New returns a Backtracker for code.
func New(code []byte, opts Options) *Backtracker {
	return &Backtracker{
		code:   code,
		opts:   opts,
		logger: logging.OrDiscard(opts.Logger),
	}
}

// IsMatch reports whether the program matches anywhere in subject, trying
// start offsets 0 through len(subject) in order.
func (b *Backtracker) IsMatch(subject string) (bool, error) {
	b.logger.Log(context.Background(), logging.LevelPrint, "comparing", "subject", subject)

	s := b.NewSearch(subject)
	for start := 0; start <= len(subject); start++ {
		matched, err := s.MatchAt(start)
		if err != nil || matched {
			return matched, err
		}
	}
	return false, nil
}

// MatchAt reports whether the program matches subject starting exactly at start.
func (b *Backtracker) MatchAt(subject string, start int) (bool, error) {
	return b.NewSearch(subject).MatchAt(start)
}

// NewSearch prepares a search over subject. The step budget and the failure
// memo are shared by every MatchAt call on the returned Search.
func (b *Backtracker) NewSearch(subject string) *Search {
	s := &Search{
		code:     b.code,
		subject:  subject,
		maxSteps: b.opts.MaxSteps,
		logger:   b.logger,
		trace:    b.logger.Enabled(context.Background(), logging.LevelTrace),
	}
	if limit := b.opts.MemoLimit; limit > 0 {
		bits := len(b.code) * (len(subject) + 1)
		if bits > 0 && bits <= limit {
			s.visited = make([]uint64, (bits+63)/64)
		}
	}
	return s
}

// Search is the per-subject state of a Backtracker. It is not safe for
// concurrent use.
type Search struct {
	code     []byte
	subject  string
	steps    int
	maxSteps int
	logger   *slog.Logger
	trace    bool

	// visited has one bit per (pc, position) pair already known to fail.
	// Layout: bit at index (pc * (len(subject)+1) + pos).
	visited []uint64
}

// Steps returns the number of instructions executed so far.
func (s *Search) Steps() int {
	return s.steps
}

// MatchAt runs the program anchored at start.
func (s *Search) MatchAt(start int) (bool, error) {
	if start < 0 || start > len(s.subject) {
		return false, nil
	}
	return s.match(0, cursor.At(s.subject, start))
}

// shouldVisit marks (pc, pos) and reports whether it was unmarked.
// A revisit can only follow a failed first visit: every call made from
// match(pc, pos) continues at a larger pc, and a success ends the search.
func (s *Search) shouldVisit(pc, pos int) bool {
	if s.visited == nil {
		return true
	}
	idx := pc*(len(s.subject)+1) + pos
	word := idx / 64
	bit := uint64(1) << (idx % 64)
	if s.visited[word]&bit != 0 {
		return false
	}
	s.visited[word] |= bit
	return true
}

// match interprets the program from pc with the subject at cur.
//
//nolint:gocyclo,cyclop // complexity is inherent to opcode dispatch
func (s *Search) match(pc int, cur cursor.Cursor) (bool, error) {
	if !s.shouldVisit(pc, cur.Pos()) {
		return false, nil
	}

	for pc < len(s.code) {
		inst, err := bytecode.Decode(s.code, pc)
		if err != nil {
			return false, err
		}
		if err := s.tick(pc, inst, cur.Pos()); err != nil {
			return false, err
		}

		next := pc + inst.Len
		switch inst.Op {
		case bytecode.OpNop:
		case bytecode.OpStx:
			if !cur.AtStart() {
				return false, nil
			}
		case bytecode.OpEtx:
			if !cur.AtEnd() {
				return false, nil
			}
		case bytecode.OpAny, bytecode.OpChr:
			c, ok := cur.Peek()
			if !ok || !inst.Accepts(c) {
				return false, nil
			}
			cur.Advance(1)
		case bytecode.OpRep:
			return s.repeat(next, cur, inst)
		case bytecode.OpErr:
			return false, nil
		case bytecode.OpRet:
			return true, nil
		default:
			return false, &bytecode.IntegrityError{Err: bytecode.ErrUnknownOpcode, PC: pc, Op: inst.Op}
		}
		pc = next
	}

	// Running off the end without RET only happens in hand-built programs.
	return true, nil
}

// repeat matches a REP instruction whose continuation starts at next.
func (s *Search) repeat(next int, origin cursor.Cursor, inst bytecode.Inst) (bool, error) {
	if inst.Min > inst.Max {
		return false, nil
	}

	limit := min(conv.Uint32ToInt(inst.Max), origin.Remaining())
	count := 0
	if inst.Operand == bytecode.OpAny {
		count = limit
	} else {
		cur := origin
		for count < limit {
			c, _ := cur.Peek()
			if !inst.Accepts(c) {
				break
			}
			cur.Advance(1)
			count++
		}
	}

	// Give back one repetition at a time until the rest of the program
	// matches or the minimum is reached.
	for n := count; n >= conv.Uint32ToInt(inst.Min); n-- {
		trial := origin
		trial.Advance(n)
		matched, err := s.match(next, trial)
		if err != nil || matched {
			return matched, err
		}
	}
	return false, nil
}

func (s *Search) tick(pc int, inst bytecode.Inst, pos int) error {
	s.steps++
	if s.maxSteps > 0 && s.steps > s.maxSteps {
		return ErrStepLimit
	}
	if s.trace {
		s.logger.Log(context.Background(), logging.LevelTrace, "exec",
			"pc", pc, "inst", inst.String(), "pos", pos)
	}
	return nil
}
