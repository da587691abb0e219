// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package strmem

import "bytes"

// StdName is the name of the standard library implementation.
const StdName = "stdlib"

// Std implements the primitives with the Go runtime's own routines: copy,
// clear, and the assembly kernels behind package bytes.
var Std Impl = std{}

type std struct{}

func (std) Name() string { return StdName }

func (std) Memcpy(dst, src []byte, n int) {
	copy(dst[:n], src[:n])
}

func (std) Memcmp(s1, s2 []byte, n int) int {
	return bytes.Compare(s1[:n], s2[:n])
}

func (std) Memset(s []byte, c byte, n int) {
	s = s[:n]
	if c == 0 {
		clear(s)
		return
	}
	for i := range s {
		s[i] = c
	}
}

func (std) Memchr(s []byte, c byte, n int) int {
	return bytes.IndexByte(s[:n], c)
}

func (std) Strlen(s []byte) int {
	if i := bytes.IndexByte(s, 0); i >= 0 {
		return i
	}
	return len(s)
}

func (s std) Strnlen(p []byte, maxlen int) int {
	if maxlen < len(p) {
		p = p[:maxlen]
	}
	return s.Strlen(p)
}

func (s std) Strchr(p []byte, c byte) int {
	n := s.Strlen(p)
	if c == 0 {
		if n == len(p) {
			return -1
		}
		return n
	}
	return bytes.IndexByte(p[:n], c)
}

func (s std) Strcmp(s1, s2 []byte) int {
	return bytes.Compare(s1[:s.Strlen(s1)], s2[:s.Strlen(s2)])
}

func (s std) Strcpy(dst, src []byte) {
	n := copy(dst, src[:s.Strlen(src)])
	dst[n] = 0
}

func (s std) Strcat(dst, src []byte) {
	s.Strcpy(dst[s.Strlen(dst):], src)
}

func (s std) Strncpy(dst, src []byte, n int) {
	l := s.Strnlen(src, n)
	copy(dst[:l], src)
	clear(dst[l:n])
}

func (s std) Strncat(dst, src []byte, n int) {
	i := s.Strlen(dst)
	l := s.Strnlen(src, n)
	copy(dst[i:i+l], src)
	dst[i+l] = 0
}
