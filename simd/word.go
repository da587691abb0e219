// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package simd

import (
	"encoding/binary"
	"math/bits"
)

// BytesPerWord is the number of bytes in a machine word.
const BytesPerWord = 8

// Log2BytesPerWord is log2(BytesPerWord).
const Log2BytesPerWord = uint(3)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// RoundUpPow2 returns val rounded up to a multiple of alignment, assuming
// alignment is a power of 2.
func RoundUpPow2(val, alignment int) int {
	return (val + alignment - 1) & (^(alignment - 1))
}

// DivUpPow2 efficiently divides a number by a power-of-2 divisor.
func DivUpPow2(dividend, divisor int, log2Divisor uint) int {
	return (dividend + divisor - 1) >> log2Divisor
}

// Splat returns a word with every lane set to val.
func Splat(val byte) uint64 {
	return lo8 * uint64(val)
}

// ZeroLanes returns a word whose high bit is set in every lane of w that
// is zero. Lanes above the lowest zero lane may be spuriously marked, so
// the result is only exact for locating the first zero lane.
func ZeroLanes(w uint64) uint64 {
	return (w - lo8) &^ w & hi8
}

// FirstLane returns the index of the lowest lane flagged in mask, or
// BytesPerWord if mask is zero.
func FirstLane(mask uint64) int {
	return bits.TrailingZeros64(mask) >> Log2BytesPerWord
}

func load(src []byte, pos int) uint64 {
	return binary.LittleEndian.Uint64(src[pos:])
}

// Memset8 sets all values of dst[] to the given byte, by doubling the
// initialized prefix with copy.
func Memset8(dst []byte, val byte) {
	if len(dst) == 0 {
		return
	}
	dst[0] = val
	for filled := 1; filled < len(dst); filled *= 2 {
		copy(dst[filled:], dst[:filled])
	}
}

// IndexByte8 returns the position of the first byte equal to val in
// arg[startPos:], or -1 if there is none.
func IndexByte8(arg []byte, val byte, startPos int) int {
	endPos := len(arg)
	pattern := Splat(val)
	pos := startPos
	for ; pos+BytesPerWord <= endPos; pos += BytesPerWord {
		if m := ZeroLanes(load(arg, pos) ^ pattern); m != 0 {
			return pos + FirstLane(m)
		}
	}
	for ; pos < endPos; pos++ {
		if arg[pos] == val {
			return pos
		}
	}
	return -1
}

// FirstZero8 returns the position of the first zero byte in
// arg[startPos:], or len(arg) if there is none.
func FirstZero8(arg []byte, startPos int) int {
	endPos := len(arg)
	pos := startPos
	for ; pos+BytesPerWord <= endPos; pos += BytesPerWord {
		if m := ZeroLanes(load(arg, pos)); m != 0 {
			return pos + FirstLane(m)
		}
	}
	for ; pos < endPos; pos++ {
		if arg[pos] == 0 {
			return pos
		}
	}
	return endPos
}

// FirstUnequal8 scans arg1[startPos:] and arg2[startPos:] for the first
// mismatching byte, returning its position if one is found, or the common
// length if all bytes match (or startPos >= len). It panics if the lengths
// are not identical, or startPos is negative.
func FirstUnequal8(arg1, arg2 []byte, startPos int) int {
	endPos := len(arg1)
	if endPos != len(arg2) {
		panic("FirstUnequal8() requires len(arg1) == len(arg2).")
	}
	if startPos < 0 {
		panic("FirstUnequal8() requires nonnegative startPos.")
	}
	pos := startPos
	for ; pos+BytesPerWord <= endPos; pos += BytesPerWord {
		if x := load(arg1, pos) ^ load(arg2, pos); x != 0 {
			return pos + FirstLane(x)
		}
	}
	for ; pos < endPos; pos++ {
		if arg1[pos] != arg2[pos] {
			return pos
		}
	}
	return endPos
}

// FirstUnequalOrZero8 is like FirstUnequal8, but also stops at the first
// position where arg1 holds a zero byte. This is the stopping point of a
// C string comparison.
func FirstUnequalOrZero8(arg1, arg2 []byte, startPos int) int {
	endPos := len(arg1)
	if endPos != len(arg2) {
		panic("FirstUnequalOrZero8() requires len(arg1) == len(arg2).")
	}
	pos := startPos
	for ; pos+BytesPerWord <= endPos; pos += BytesPerWord {
		w := load(arg1, pos)
		diff := FirstLane(w ^ load(arg2, pos))
		zero := FirstLane(ZeroLanes(w))
		if zero < diff {
			diff = zero
		}
		if diff < BytesPerWord {
			return pos + diff
		}
	}
	for ; pos < endPos; pos++ {
		if arg1[pos] != arg2[pos] || arg1[pos] == 0 {
			return pos
		}
	}
	return endPos
}
