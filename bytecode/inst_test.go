package bytecode

import (
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		code []byte
		want Inst
	}{
		{"nop", []byte{0x00}, Inst{Op: OpNop, Len: 1}},
		{"bare_any", []byte{0x03}, Inst{Op: OpAny, Min: 1, Max: 1, Len: 1}},
		{"bare_chr", []byte{0x04, 'q'}, Inst{Op: OpChr, Byte: 'q', Min: 1, Max: 1, Len: 2}},
		{
			"rep_chr",
			[]byte{0x05, 0, 0, 0, 1, 0xff, 0xff, 0xff, 0xff, 0x04, 'z'},
			Inst{Op: OpRep, Operand: OpChr, Byte: 'z', Min: 1, Max: Unbounded, Len: 11},
		},
		{
			"rep_any",
			[]byte{0x05, 0, 0, 0, 0, 0, 0, 0, 1, 0x03},
			Inst{Op: OpRep, Operand: OpAny, Min: 0, Max: 1, Len: 10},
		},
		{"ret", []byte{0x07}, Inst{Op: OpRet, Len: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.code, 0)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeIntegrityErrors(t *testing.T) {
	tests := []struct {
		name string
		code []byte
		want error
		pc   int
	}{
		{"unknown_opcode", []byte{0x2a}, ErrUnknownOpcode, 0},
		{"chr_missing_operand", []byte{0x04}, ErrTruncated, 1},
		{"rep_missing_max", []byte{0x05, 0, 0, 0, 0, 0, 0}, ErrTruncated, 5},
		{"rep_missing_atom", []byte{0x05, 0, 0, 0, 0, 0, 0, 0, 1}, ErrTruncated, 9},
		{"rep_of_stx", []byte{0x05, 0, 0, 0, 0, 0, 0, 0, 1, 0x01}, ErrNotRepeatable, 9},
		{"rep_of_rep", []byte{0x05, 0, 0, 0, 0, 0, 0, 0, 1, 0x05}, ErrNotRepeatable, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.code, 0)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Decode error = %v, want %v", err, tt.want)
			}
			var ie *IntegrityError
			if !errors.As(err, &ie) {
				t.Fatalf("error %T is not *IntegrityError", err)
			}
			if ie.PC != tt.pc {
				t.Errorf("PC = %d, want %d", ie.PC, tt.pc)
			}
		})
	}
}

func TestIntegrityErrorMessage(t *testing.T) {
	err := &IntegrityError{Err: ErrUnknownOpcode, PC: 0x10, Op: Opcode(0x2a)}
	want := "bytecode: integrity error at pc 0010 (OP(0x2a)): unexpected opcode"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnknownOpcode) {
		t.Error("errors.Is(err, ErrUnknownOpcode) = false")
	}
}

func TestInstString(t *testing.T) {
	tests := []struct {
		inst Inst
		want string
	}{
		{Inst{Op: OpStx}, "STX"},
		{Inst{Op: OpChr, Byte: 'a'}, "CHR 'a'"},
		{Inst{Op: OpChr, Byte: 0}, `CHR '\x00'`},
		{Inst{Op: OpRep, Operand: OpAny, Min: 1, Max: Unbounded}, "REP 1,inf ANY"},
		{Inst{Op: OpRep, Operand: OpChr, Byte: '$', Min: 0, Max: 1}, "REP 0,1 CHR '$'"},
		{Inst{Op: Opcode(0x99)}, "OP(0x99)"},
	}

	for _, tt := range tests {
		if got := tt.inst.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
