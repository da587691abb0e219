// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"

	"github.com/grailbio/strmem/strmem"
)

func init() {
	register("memchr", func(impl strmem.Impl, rnd *rand.Rand) Wrapper {
		return &memchrBench{impl: impl, rnd: rnd}
	})
}

// memchrBench scans a random block for each of the 256 byte values in
// every iteration. Only the results of the last iteration are kept.
type memchrBench struct {
	impl strmem.Impl
	rnd  *rand.Rand
	data [][]byte
	last int
	res  [256]int
}

func (b *memchrBench) Setup(size int) {
	b.data = alloc(datasets, size)
	for ds := range b.data {
		MemInitRandom(b.rnd, b.data[ds])
	}
}

func (b *memchrBench) Run(iters int) {
	for i := 0; i < iters; i++ {
		ds := i % datasets
		d := b.data[ds]
		for c := 0; c < 256; c++ {
			b.res[c] = b.impl.Memchr(d, byte(c), len(d))
		}
		b.last = ds
	}
}

func (b *memchrBench) Verify(size, iters int) bool {
	if iters == 0 {
		return true
	}
	d := b.data[b.last]
	for c := 0; c < 256; c++ {
		if !verifyScan(d[:size], byte(c), b.res[c]) {
			return false
		}
	}
	return true
}

// verifyScan checks that r is the index of the first c in d, or -1 if d
// holds no c.
func verifyScan(d []byte, c byte, r int) bool {
	end := len(d)
	if r >= 0 {
		if r >= len(d) || d[r] != c {
			return false
		}
		end = r
	}
	for i := 0; i < end; i++ {
		if d[i] == c {
			return false
		}
	}
	return true
}
