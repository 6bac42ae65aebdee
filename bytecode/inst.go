package bytecode

import (
	"fmt"
	"strconv"
)

// Inst is one decoded instruction.
//
// A REP instruction is decoded together with the ANY or CHR it governs:
// Op is OpRep, Operand holds the repeated opcode and Len spans both.
// Bare ANY and CHR are reported with Min == Max == 1 so the interpreter can
// treat every consuming instruction as a bounded repetition.
type Inst struct {
	Op      Opcode
	Operand Opcode // repeated opcode, REP only
	Byte    byte   // expected byte, CHR or REP+CHR only
	Min     uint32
	Max     uint32
	Len     int // encoded size in bytes
}

// Atom returns the consuming opcode: Operand for REP, Op otherwise.
func (i Inst) Atom() Opcode {
	if i.Op == OpRep {
		return i.Operand
	}
	return i.Op
}

// Consuming reports whether the instruction advances the subject.
func (i Inst) Consuming() bool {
	return i.Op == OpAny || i.Op == OpChr || i.Op == OpRep
}

// Accepts reports whether b is matched by one repetition of the atom.
func (i Inst) Accepts(b byte) bool {
	return i.Atom() == OpAny || b == i.Byte
}

// String returns the assembly form, e.g. `REP 0,inf CHR 'a'`.
func (i Inst) String() string {
	switch i.Op {
	case OpChr:
		return "CHR " + quoteByte(i.Byte)
	case OpRep:
		atom := i.Operand.String()
		if i.Operand == OpChr {
			atom += " " + quoteByte(i.Byte)
		}
		return fmt.Sprintf("REP %d,%s %s", i.Min, formatMax(i.Max), atom)
	default:
		return i.Op.String()
	}
}

func quoteByte(b byte) string {
	return strconv.QuoteRuneToASCII(rune(b))
}

func formatMax(v uint32) string {
	if v == Unbounded {
		return "inf"
	}
	return strconv.FormatUint(uint64(v), 10)
}

// Decode decodes the instruction at pc.
func Decode(code []byte, pc int) (Inst, error) {
	r := NewReader(code)
	r.Seek(pc)
	return decode(r, pc)
}

func decode(r *Reader, pc int) (Inst, error) {
	op, err := r.NextOp()
	if err != nil {
		return Inst{}, err
	}

	inst := Inst{Op: op}
	switch op {
	case OpNop, OpStx, OpEtx, OpErr, OpRet:
	case OpAny:
		inst.Min, inst.Max = 1, 1
	case OpChr:
		if inst.Byte, err = r.NextByte(); err != nil {
			return Inst{}, err
		}
		inst.Min, inst.Max = 1, 1
	case OpRep:
		if inst.Min, err = r.NextLong(); err != nil {
			return Inst{}, err
		}
		if inst.Max, err = r.NextLong(); err != nil {
			return Inst{}, err
		}
		operand, err := r.NextOp()
		if err != nil {
			return Inst{}, err
		}
		if !operand.Repeatable() {
			return Inst{}, &IntegrityError{Err: ErrNotRepeatable, PC: r.Pos() - 1, Op: operand}
		}
		inst.Operand = operand
		if operand == OpChr {
			if inst.Byte, err = r.NextByte(); err != nil {
				return Inst{}, err
			}
		}
	default:
		return Inst{}, &IntegrityError{Err: ErrUnknownOpcode, PC: pc, Op: op}
	}
	inst.Len = r.Pos() - pc
	return inst, nil
}
