package bytecode

import (
	"fmt"
	"io"
)

// Disassemble writes one line per instruction of code to w:
//
//	0000  NOP
//	0001  REP 0,inf CHR 'a'
//	000c  RET
//
// It stops at the first malformed instruction and returns its error.
func Disassemble(w io.Writer, code []byte) error {
	r := NewReader(code)
	for !r.AtEnd() {
		pc := r.Pos()
		inst, err := decode(r, pc)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%04x  %s\n", pc, inst); err != nil {
			return err
		}
	}
	return nil
}
