package bytecode

import (
	"encoding/binary"
	"strings"
)

// Program is an append-only byte code buffer.
//
// The compiler fills a Program once per pattern; the interpreter only reads
// it. Nothing mutates emitted instructions in place, so a Program that is no
// longer being written may be shared by concurrent readers.
type Program struct {
	code []byte

	// last is the offset and opcode of the most recently emitted instruction,
	// -1 when nothing was emitted since the last Reset.
	lastAt int
	lastOp Opcode
}

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{lastAt: -1}
}

// Reset discards all instructions, keeping the allocated capacity.
func (p *Program) Reset() {
	p.code = p.code[:0]
	p.lastAt = -1
}

// Bytes returns the encoded program. The caller must not modify it.
func (p *Program) Bytes() []byte {
	return p.code[:len(p.code):len(p.code)]
}

// Len returns the encoded size in bytes.
func (p *Program) Len() int {
	return len(p.code)
}

// Clone returns an independent copy of p.
func (p *Program) Clone() *Program {
	code := make([]byte, len(p.code))
	copy(code, p.code)
	return &Program{code: code, lastAt: p.lastAt, lastOp: p.lastOp}
}

// Terminator returns the final opcode when the program ends with RET or ERR.
func (p *Program) Terminator() (Opcode, bool) {
	if p.lastAt < 0 || p.lastAt != len(p.code)-1 {
		return 0, false
	}
	if p.lastOp != OpRet && p.lastOp != OpErr {
		return 0, false
	}
	return p.lastOp, true
}

// Runnable reports whether the program is terminated by RET.
func (p *Program) Runnable() bool {
	op, ok := p.Terminator()
	return ok && op == OpRet
}

// EmitByte appends a raw byte.
func (p *Program) EmitByte(v uint8) {
	p.code = append(p.code, v)
}

// EmitWord appends a big-endian 16-bit value.
func (p *Program) EmitWord(v uint16) {
	p.code = binary.BigEndian.AppendUint16(p.code, v)
}

// EmitLong appends a big-endian 32-bit value.
func (p *Program) EmitLong(v uint32) {
	p.code = binary.BigEndian.AppendUint32(p.code, v)
}

func (p *Program) emitOp(op Opcode) {
	p.lastAt = len(p.code)
	p.lastOp = op
	p.EmitByte(uint8(op))
}

// EmitNop appends NOP.
func (p *Program) EmitNop() { p.emitOp(OpNop) }

// EmitStx appends STX.
func (p *Program) EmitStx() { p.emitOp(OpStx) }

// EmitEtx appends ETX.
func (p *Program) EmitEtx() { p.emitOp(OpEtx) }

// EmitAny appends ANY.
func (p *Program) EmitAny() { p.emitOp(OpAny) }

// EmitChr appends CHR with its expected byte.
func (p *Program) EmitChr(c byte) {
	p.emitOp(OpChr)
	p.EmitByte(c)
}

// EmitRep appends REP with its repetition bounds. The caller must emit the
// repeated ANY or CHR right after.
func (p *Program) EmitRep(minCount, maxCount uint32) {
	p.emitOp(OpRep)
	p.EmitLong(minCount)
	p.EmitLong(maxCount)
}

// EmitErr appends ERR.
func (p *Program) EmitErr() { p.emitOp(OpErr) }

// EmitRet appends RET.
func (p *Program) EmitRet() { p.emitOp(OpRet) }

// String returns the disassembly listing of the program.
// Malformed byte code is listed up to the first bad instruction.
func (p *Program) String() string {
	var sb strings.Builder
	_ = Disassemble(&sb, p.code)
	return sb.String()
}
