// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"

	"github.com/grailbio/strmem/strmem"
)

func init() {
	register("strchr", func(impl strmem.Impl, rnd *rand.Rand) Wrapper {
		return &strchrBench{impl: impl, rnd: rnd}
	})
}

// strchrBench scans a random string for each character 1..127 in every
// iteration. Only the results of the last iteration are kept.
type strchrBench struct {
	impl strmem.Impl
	rnd  *rand.Rand
	data [][]byte
	last int
	res  [127]int
}

func (b *strchrBench) Setup(size int) {
	b.data = alloc(smallDatasets, size+1)
	for ds := range b.data {
		StrInitRandom(b.rnd, b.data[ds], size)
	}
}

func (b *strchrBench) Run(iters int) {
	for i := 0; i < iters; i++ {
		ds := i % smallDatasets
		for c := 1; c < 128; c++ {
			b.res[c-1] = b.impl.Strchr(b.data[ds], byte(c))
		}
		b.last = ds
	}
}

func (b *strchrBench) Verify(size, iters int) bool {
	if iters == 0 {
		return true
	}
	s := b.data[b.last]
	n := 0
	for s[n] != 0 {
		n++
	}
	for c := 1; c < 128; c++ {
		if !verifyScan(s[:n], byte(c), b.res[c-1]) {
			return false
		}
	}
	return true
}
