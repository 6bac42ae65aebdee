// Package simd provides fast byte and substring search for prefilters.
//
// Memchr dispatches on CPU features detected at package initialization:
// where the CPU has vector units the runtime's assembly IndexByte is used,
// otherwise a pure Go SWAR (SIMD Within A Register) loop that inspects
// 8 bytes per iteration.
package simd

import (
	"bytes"
	"runtime"

	"golang.org/x/sys/cpu"
)

// hasVector reports whether the runtime's IndexByte has a vectorized path.
var hasVector = detectVector()

func detectVector() bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return cpu.X86.HasSSE2 || cpu.X86.HasAVX2
	case "arm64":
		return cpu.ARM64.HasASIMD
	case "ppc64", "ppc64le":
		return cpu.PPC64.IsPOWER8
	case "s390x":
		return cpu.S390X.HasVX
	default:
		return false
	}
}

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// Example:
//
//	pos := simd.Memchr([]byte("hello world"), 'o')
//	// pos == 4
func Memchr(haystack []byte, needle byte) int {
	if len(haystack) == 0 {
		return -1
	}
	if hasVector && len(haystack) >= 32 {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrGeneric(haystack, needle)
}

// MemchrAt is Memchr starting at offset at. The result is an absolute index.
func MemchrAt(haystack []byte, needle byte, at int) int {
	if at >= len(haystack) {
		return -1
	}
	pos := Memchr(haystack[at:], needle)
	if pos < 0 {
		return -1
	}
	return at + pos
}
