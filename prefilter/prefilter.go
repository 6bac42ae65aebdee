// Package prefilter finds candidate start offsets for a program using the
// literal prefixes extracted from it.
//
// A prefilter rejects offsets of the subject where no match can start, so
// the interpreter only runs where one of the literals occurs. The strategy
// is selected from the literal sequence:
//   - Single byte → memchr
//   - Single substring → memmem
//   - Several literals → Aho-Corasick automaton
//
// Example usage:
//
//	prog, _ := syntax.Compile("hel+o")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(prog.Bytes())
//	pf, _ := prefilter.Build(prefixes)
//	pos := pf.Find([]byte("say hello"), 0)
//	// pos == 4
package prefilter

import (
	"fmt"

	"github.com/coregx/bcre/literal"
	"github.com/coregx/bcre/simd"
)

// Prefilter is used to quickly find candidate match positions before running
// the interpreter.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or -1.
	// A candidate is an offset where one of the literals begins; it does not
	// guarantee a match unless IsComplete reports true.
	Find(haystack []byte, start int) int

	// IsComplete returns true if a candidate guarantees a match, so the
	// interpreter need not verify it.
	IsComplete() bool

	// LiteralLen returns the literal length when the prefilter searches for
	// a single complete literal, and 0 otherwise.
	LiteralLen() int

	// HeapBytes returns the heap memory held by the prefilter.
	HeapBytes() int

	fmt.Stringer
}

// Build selects a prefilter for the sequence. It returns nil when the
// sequence cannot serve as a prefilter: it is empty or one of its literals
// is empty, meaning a match may start anywhere.
func Build(seq *literal.Seq) (Prefilter, error) {
	if seq.IsEmpty() || seq.MinLen() == 0 {
		return nil, nil
	}

	complete := seq.AllComplete()
	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchrPrefilter(lit.Bytes[0], complete), nil
		}
		return newMemmemPrefilter(lit.Bytes, complete), nil
	}
	return newAhoCorasickPrefilter(seq, complete)
}

// memchrPrefilter searches for a single byte with simd.Memchr.
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{
		needle:   needle,
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.Memchr.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		return -1
	}
	return simd.MemchrAt(haystack, p.needle, start)
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

func (p *memchrPrefilter) String() string {
	return fmt.Sprintf("memchr(%q)", p.needle)
}

// memmemPrefilter searches for a single substring with simd.Memmem.
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

// newMemmemPrefilter copies needle so the prefilter does not alias the
// sequence.
func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	return &memmemPrefilter{
		needle:   append([]byte(nil), needle...),
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.Memmem.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		return -1
	}
	return simd.MemmemAt(haystack, p.needle, start)
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}

func (p *memmemPrefilter) String() string {
	return fmt.Sprintf("memmem(%q)", p.needle)
}
