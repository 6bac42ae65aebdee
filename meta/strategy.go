package meta

import (
	"github.com/coregx/bcre/bytecode"
	"github.com/coregx/bcre/prefilter"
)

// Strategy represents how the engine chooses start offsets for the
// interpreter.
type Strategy int

const (
	// UseBacktrack tries every offset from 0 through len(subject).
	// Selected when no better strategy applies or prefiltering is disabled.
	UseBacktrack Strategy = iota

	// UseAnchoredStart tries offset 0 only.
	// Selected for programs whose first instruction after NOPs is STX:
	// STX fails at every other offset.
	UseAnchoredStart

	// UsePrefilter tries only the offsets where a prefix literal occurs.
	// Selected when literal extraction yields literals of at least
	// Config.MinLiteralLen bytes.
	UsePrefilter

	// UseLiteral answers from the prefilter alone.
	// Selected when every extracted literal is complete, e.g. /hello/ or
	// /ab?c/, so finding one proves the program matches.
	UseLiteral
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseBacktrack:
		return "UseBacktrack"
	case UseAnchoredStart:
		return "UseAnchoredStart"
	case UsePrefilter:
		return "UsePrefilter"
	case UseLiteral:
		return "UseLiteral"
	default:
		return "Unknown"
	}
}

// selectStrategy picks the strategy for code given the prefilter built for
// it, which may be nil.
func selectStrategy(code []byte, pf prefilter.Prefilter) Strategy {
	if isStartAnchored(code) {
		return UseAnchoredStart
	}
	if pf == nil {
		return UseBacktrack
	}
	if pf.IsComplete() {
		return UseLiteral
	}
	return UsePrefilter
}

// isStartAnchored reports whether the first instruction that is not a NOP
// is STX.
func isStartAnchored(code []byte) bool {
	for pc := 0; pc < len(code); {
		inst, err := bytecode.Decode(code, pc)
		if err != nil {
			return false
		}
		switch inst.Op {
		case bytecode.OpNop:
			pc += inst.Len
		case bytecode.OpStx:
			return true
		default:
			return false
		}
	}
	return false
}
