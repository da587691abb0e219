// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import "math/rand"

// MemInitRandom fills p with random bytes.
func MemInitRandom(rnd *rand.Rand, p []byte) {
	for i := range p {
		p[i] = byte(rnd.Intn(256))
	}
}

// MemInitZero zeroes p.
func MemInitZero(p []byte) {
	for i := range p {
		p[i] = 0
	}
}

// StrInitRandom writes a string of n random characters in 1..127 to s,
// and terminates it at s[n].
func StrInitRandom(rnd *rand.Rand, s []byte, n int) {
	for i := 0; i < n; i++ {
		s[i] = byte(1 + rnd.Intn(127))
	}
	s[n] = 0
}

// StrInitConst writes a string of n copies of c to s, and terminates it
// at s[n].
func StrInitConst(s []byte, n int, c byte) {
	for i := 0; i < n; i++ {
		s[i] = c
	}
	s[n] = 0
}

// alloc returns count buffers of n bytes each, carved from one
// allocation.
func alloc(count, n int) [][]byte {
	backing := make([]byte, count*n)
	bufs := make([][]byte, count)
	for i := range bufs {
		bufs[i] = backing[i*n : (i+1)*n : (i+1)*n]
	}
	return bufs
}
