package prefilter

import (
	"fmt"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/bcre/literal"
)

// ahoCorasickPrefilter searches for several literals at once.
//
// The automaton reports the match that ends first. A literal starting
// earlier must end at or after it, so it starts no more than maxLen bytes
// before that end; Find checks those offsets with anchored searches.
type ahoCorasickPrefilter struct {
	automaton *ahocorasick.Automaton
	count     int
	bytes     int
	maxLen    int
	complete  bool
}

func newAhoCorasickPrefilter(seq *literal.Seq, complete bool) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	size, maxLen := 0, 0
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		size += len(lit.Bytes)
		maxLen = max(maxLen, len(lit.Bytes))
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("prefilter: building automaton for %d literals: %w", seq.Len(), err)
	}
	return &ahoCorasickPrefilter{
		automaton: automaton,
		count:     seq.Len(),
		bytes:     size,
		maxLen:    maxLen,
		complete:  complete,
	}, nil
}

// Find implements Prefilter.Find. It returns the leftmost offset at or
// after start where any literal begins.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.automaton.Find(haystack, start)
	if m == nil {
		return -1
	}
	for at := max(start, m.End-p.maxLen); at < m.Start; at++ {
		if p.automaton.FindAt(haystack, at) != nil {
			return at
		}
	}
	return m.Start
}

// IsComplete implements Prefilter.IsComplete.
func (p *ahoCorasickPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen. Literals differ in length.
func (p *ahoCorasickPrefilter) LiteralLen() int {
	return 0
}

// HeapBytes implements Prefilter.HeapBytes. It counts the literal bytes the
// automaton was built from.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.bytes
}

func (p *ahoCorasickPrefilter) String() string {
	return fmt.Sprintf("aho-corasick(%d literals)", p.count)
}
