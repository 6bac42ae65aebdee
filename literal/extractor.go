package literal

import (
	"github.com/coregx/bcre/bytecode"
	"github.com/coregx/bcre/internal/conv"
)

// Config bounds literal extraction.
type Config struct {
	// MaxLiterals caps the size of the sequence. Optional atoms double it.
	MaxLiterals int

	// MaxLiteralLen caps the length of a single literal.
	MaxLiteralLen int
}

// DefaultConfig returns limits suitable for prefiltering.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
	}
}

// Extractor walks programs and collects their literal prefixes.
type Extractor struct {
	config Config
}

// New returns an Extractor with the given limits.
func New(config Config) *Extractor {
	return &Extractor{config: config}
}

// path is one literal being built; open paths still grow.
type path struct {
	bytes []byte
	open  bool
}

// ExtractPrefixes returns the literals every match of code starts with.
//
// The walk follows the program from its first instruction:
//   - CHR appends its byte to every open path
//   - REP min,max CHR appends min copies, then forks each open path into
//     "stop repeating here" (still open) and "one more" (open only when max
//     is min+1)
//   - a leading STX is skipped; the literals are then marked incomplete since
//     they only describe offset 0
//   - ANY, ETX, a STX after consumed bytes, or a limit ends the walk
//   - RET ends the walk and marks open paths complete
//
// The result is minimized. It is empty when the program is malformed or
// was not compiled successfully. A literal of length zero means some match
// can start anywhere, which makes the sequence useless as a prefilter.
//
//nolint:gocyclo,cyclop // one case per opcode
func (e *Extractor) ExtractPrefixes(code []byte) *Seq {
	paths := []path{{open: true}}
	anchored := false
	complete := false

walk:
	for pc := 0; pc < len(code); {
		inst, err := bytecode.Decode(code, pc)
		if err != nil {
			return NewSeq()
		}
		pc += inst.Len

		switch inst.Op {
		case bytecode.OpNop:
		case bytecode.OpStx:
			if anchored || consumed(paths) {
				break walk
			}
			anchored = true
		case bytecode.OpChr:
			if !e.extend(paths, inst.Byte, 1) {
				break walk
			}
		case bytecode.OpRep:
			if inst.Operand != bytecode.OpChr || inst.Min > inst.Max {
				break walk
			}
			if !e.extend(paths, inst.Byte, conv.Uint32ToInt(inst.Min)) {
				break walk
			}
			if inst.Max == inst.Min {
				continue
			}
			if 2*len(paths) > e.config.MaxLiterals {
				break walk
			}
			paths = fork(paths, inst.Byte, inst.Max-inst.Min == 1)
		case bytecode.OpRet:
			complete = true
			break walk
		case bytecode.OpErr:
			return NewSeq()
		default:
			break walk
		}

		if !anyOpen(paths) {
			break
		}
	}

	lits := make([]Literal, 0, len(paths))
	seen := make(map[string]int, len(paths))
	for _, p := range paths {
		lit := NewLiteral(p.bytes, complete && p.open && !anchored)
		if i, dup := seen[string(p.bytes)]; dup {
			lits[i].Complete = lits[i].Complete || lit.Complete
			continue
		}
		seen[string(p.bytes)] = len(lits)
		lits = append(lits, lit)
	}

	seq := NewSeq(lits...)
	seq.Minimize()
	return seq
}

// extend appends n copies of b to every open path. A path that would exceed
// MaxLiteralLen is filled up to the limit; extend then closes every path and
// reports false.
func (e *Extractor) extend(paths []path, b byte, n int) bool {
	ok := true
	for i := range paths {
		if !paths[i].open {
			continue
		}
		k := n
		if room := e.config.MaxLiteralLen - len(paths[i].bytes); k > room {
			k = max(room, 0)
			ok = false
		}
		for ; k > 0; k-- {
			paths[i].bytes = append(paths[i].bytes, b)
		}
	}
	if !ok {
		for i := range paths {
			paths[i].open = false
		}
	}
	return ok
}

// fork adds, for every open path, a sibling with one more b.
func fork(paths []path, b byte, siblingOpen bool) []path {
	out := make([]path, 0, 2*len(paths))
	for _, p := range paths {
		out = append(out, p)
		if !p.open {
			continue
		}
		sibling := make([]byte, len(p.bytes)+1)
		copy(sibling, p.bytes)
		sibling[len(p.bytes)] = b
		out = append(out, path{bytes: sibling, open: siblingOpen})
	}
	return out
}

func anyOpen(paths []path) bool {
	for _, p := range paths {
		if p.open {
			return true
		}
	}
	return false
}

func consumed(paths []path) bool {
	for _, p := range paths {
		if len(p.bytes) > 0 {
			return true
		}
	}
	return false
}
