// Package cursor provides a bounds-checked read cursor over a string.
//
// A Cursor never owns or mutates the text it walks. It is a small value:
// copying it forks the position, which is how the interpreter explores
// alternative repetition counts.
package cursor

// Cursor is a position within a string.
type Cursor struct {
	text string
	pos  int
}

// New returns a cursor at the start of text.
func New(text string) Cursor {
	return Cursor{text: text}
}

// At returns a cursor at pos, clamped to [0, len(text)].
func At(text string, pos int) Cursor {
	c := Cursor{text: text}
	c.Seek(pos)
	return c
}

// Pos returns the byte offset from the start of the text.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the length of the whole text.
func (c *Cursor) Len() int { return len(c.text) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.text) - c.pos }

// AtStart reports whether the cursor is at the very first position of the text.
func (c *Cursor) AtStart() bool { return c.pos == 0 }

// AtEnd reports whether the cursor is past the last byte of the text.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.text) }

// Peek returns the byte under the cursor without consuming it.
func (c *Cursor) Peek() (byte, bool) {
	if c.AtEnd() {
		return 0, false
	}
	return c.text[c.pos], true
}

// Next consumes and returns the byte under the cursor.
func (c *Cursor) Next() (byte, bool) {
	b, ok := c.Peek()
	if ok {
		c.pos++
	}
	return b, ok
}

// Advance moves forward n bytes, stopping at the end of the text.
func (c *Cursor) Advance(n int) {
	c.Seek(c.pos + n)
}

// Seek moves to pos, clamped to [0, len(text)].
func (c *Cursor) Seek(pos int) {
	c.pos = min(max(pos, 0), len(c.text))
}
