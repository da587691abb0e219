// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package strmem defines the memory and string primitives measured by the
// strmem benchmarks, and the implementations they can be measured
// against.
//
// Strings are C strings held in byte slices: a string ends at its first
// zero byte, or at the end of the slice if it holds none. Functions that
// return a position return a byte index, with -1 standing for a null
// pointer. Destinations must be large enough for the bytes the primitive
// writes; an undersized destination panics with an index out of range.
package strmem

// Impl is an implementation of the primitives. Implementations are not
// safe for concurrent use.
type Impl interface {
	// Name returns the name under which Lookup finds the implementation.
	Name() string

	// Memcpy copies n bytes from src to dst.
	Memcpy(dst, src []byte, n int)
	// Memcmp compares the first n bytes of s1 and s2. The result is
	// negative, zero or positive as the first differing byte of s1 is
	// less than, equal to or greater than that of s2.
	Memcmp(s1, s2 []byte, n int) int
	// Memset sets the first n bytes of s to c.
	Memset(s []byte, c byte, n int)
	// Memchr returns the index of the first c in s[:n], or -1.
	Memchr(s []byte, c byte, n int) int

	// Strlen returns the number of bytes before the terminator of s.
	Strlen(s []byte) int
	// Strnlen returns min(Strlen(s), maxlen), examining at most maxlen
	// bytes.
	Strnlen(s []byte, maxlen int) int
	// Strchr returns the index of the first c in the string s, or -1.
	// Searching for 0 finds the terminator.
	Strchr(s []byte, c byte) int
	// Strcmp compares the strings s1 and s2, with the sign convention of
	// Memcmp.
	Strcmp(s1, s2 []byte) int

	// Strcpy copies the string src, terminator included, to dst.
	Strcpy(dst, src []byte)
	// Strcat appends the string src to the string in dst.
	Strcat(dst, src []byte)
	// Strncpy copies at most n bytes of the string src to dst. If src is
	// shorter than n, the rest of dst[:n] is zeroed; otherwise dst is not
	// terminated.
	Strncpy(dst, src []byte, n int)
	// Strncat appends at most n bytes of the string src to the string in
	// dst, and always terminates the result.
	Strncat(dst, src []byte, n int)
}

// Counter is implemented by implementations that count the vector
// instructions they execute.
type Counter interface {
	// Instructions returns the number of instructions executed so far.
	Instructions() uint64
}

// at returns s[i], or the implicit terminator past the end of s.
func at(s []byte, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}
