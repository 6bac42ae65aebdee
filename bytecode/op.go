// Package bytecode defines the instruction set shared by the pattern compiler
// and the backtracking interpreter.
//
// A program is a flat byte stream. Every instruction starts with an 8-bit
// opcode optionally followed by fixed-width big-endian operands:
//
//	NOP  0x00
//	STX  0x01
//	ETX  0x02
//	ANY  0x03
//	CHR  0x04 <byte>
//	REP  0x05 <min:u32> <max:u32>   followed by ANY or CHR
//	ERR  0x06
//	RET  0x07
//
// REP is not a standalone instruction: it governs the single ANY or CHR
// instruction that physically follows it. A max of Unbounded means no
// upper limit.
package bytecode

import (
	"fmt"
	"math"
)

// Opcode is the 8-bit instruction tag.
type Opcode uint8

// Instruction opcodes.
const (
	OpNop Opcode = 0x00 // no operation
	OpStx Opcode = 0x01 // start of text
	OpEtx Opcode = 0x02 // end of text
	OpAny Opcode = 0x03 // any byte
	OpChr Opcode = 0x04 // specific byte
	OpRep Opcode = 0x05 // repeat next instruction
	OpErr Opcode = 0x06 // failed compilation
	OpRet Opcode = 0x07 // successful end of program
)

// Unbounded is the REP max operand meaning "no upper limit".
const Unbounded uint32 = math.MaxUint32

var opcodeNames = [...]string{
	OpNop: "NOP",
	OpStx: "STX",
	OpEtx: "ETX",
	OpAny: "ANY",
	OpChr: "CHR",
	OpRep: "REP",
	OpErr: "ERR",
	OpRet: "RET",
}

// String returns the mnemonic of op, or OP(0xNN) for undefined values.
func (op Opcode) String() string {
	if op.Valid() {
		return opcodeNames[op]
	}
	return fmt.Sprintf("OP(0x%02x)", uint8(op))
}

// Valid reports whether op is part of the instruction set.
func (op Opcode) Valid() bool {
	return op <= OpRet
}

// Repeatable reports whether op may follow a REP instruction.
func (op Opcode) Repeatable() bool {
	return op == OpAny || op == OpChr
}

// Width returns the encoded size of op including its operands,
// or 0 for undefined opcodes. For REP the wrapped instruction is not counted.
func (op Opcode) Width() int {
	switch op {
	case OpNop, OpStx, OpEtx, OpAny, OpErr, OpRet:
		return 1
	case OpChr:
		return 2
	case OpRep:
		return 9
	default:
		return 0
	}
}
