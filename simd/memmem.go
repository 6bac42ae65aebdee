package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack. An empty needle matches at 0,
// as with bytes.Index.
//
// Candidates are found by scanning for the needle's last byte with Memchr;
// each candidate is verified against the whole needle.
//
// Example:
//
//	pos := simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab"))
//	// pos == 4
func Memmem(haystack, needle []byte) int {
	m := len(needle)
	switch {
	case m == 0:
		return 0
	case m > len(haystack):
		return -1
	case m == 1:
		return Memchr(haystack, needle[0])
	}

	last := m - 1
	rare := needle[last]
	for from := last; from < len(haystack); {
		pos := MemchrAt(haystack, rare, from)
		if pos < 0 {
			return -1
		}
		start := pos - last
		if bytes.Equal(haystack[start:pos+1], needle) {
			return start
		}
		from = pos + 1
	}
	return -1
}

// MemmemAt is Memmem starting at offset at. The result is an absolute index.
func MemmemAt(haystack, needle []byte, at int) int {
	if at > len(haystack) {
		return -1
	}
	pos := Memmem(haystack[at:], needle)
	if pos < 0 {
		return -1
	}
	return at + pos
}
