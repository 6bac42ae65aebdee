// Package conv provides integer conversion helpers for the regex engine.
//
// Repetition bounds in byte code are unsigned 32-bit values while subject
// offsets are ints. On 32-bit platforms an int cannot hold every uint32, so
// conversions saturate instead of wrapping.
package conv

import "math"

// Uint32ToInt converts n to int, saturating at math.MaxInt.
//
//go:inline
func Uint32ToInt(n uint32) int {
	if uint64(n) > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
