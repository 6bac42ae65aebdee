package bytecode

import "encoding/binary"

// Reader is a forward cursor over encoded byte code. Every read is bounds
// checked: running past the end yields an *IntegrityError wrapping
// ErrTruncated instead of a zero value.
type Reader struct {
	code []byte
	pos  int
	op   Opcode // last opcode read by NextOp
}

// NewReader returns a Reader positioned at the start of code.
func NewReader(code []byte) *Reader {
	return &Reader{code: code}
}

// Pos returns the current offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Seek moves the cursor to pc, clamped to [0, len(code)].
func (r *Reader) Seek(pc int) {
	r.pos = min(max(pc, 0), len(r.code))
}

// AtEnd reports whether the whole program has been consumed.
func (r *Reader) AtEnd() bool {
	return r.pos >= len(r.code)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.code) - r.pos
}

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return &IntegrityError{Err: ErrTruncated, PC: r.pos, Op: r.op}
	}
	return nil
}

// NextOp reads an opcode byte and remembers it for error reporting.
func (r *Reader) NextOp() (Opcode, error) {
	v, err := r.NextByte()
	if err != nil {
		return 0, err
	}
	r.op = Opcode(v)
	return r.op, nil
}

// NextByte reads one byte.
func (r *Reader) NextByte() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.code[r.pos]
	r.pos++
	return v, nil
}

// NextWord reads a big-endian 16-bit value.
func (r *Reader) NextWord() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.code[r.pos:])
	r.pos += 2
	return v, nil
}

// NextLong reads a big-endian 32-bit value.
func (r *Reader) NextLong() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.code[r.pos:])
	r.pos += 4
	return v, nil
}
