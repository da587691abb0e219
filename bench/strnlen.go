// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"

	"github.com/grailbio/strmem/strmem"
)

func init() {
	register("strnlen", func(impl strmem.Impl, rnd *rand.Rand) Wrapper {
		return &strnlenBench{impl: impl, rnd: rnd}
	})
}

// strnlenBench bounds the length of a string of 2*size characters by
// size, so every call stops at the bound.
type strnlenBench struct {
	impl strmem.Impl
	rnd  *rand.Rand
	data [][]byte
	res  []int
}

func (b *strnlenBench) Setup(size int) {
	b.data = alloc(datasets, 2*size+1)
	b.res = make([]int, datasets)
	for ds := range b.data {
		StrInitRandom(b.rnd, b.data[ds], 2*size)
	}
}

func (b *strnlenBench) Run(iters int) {
	for i := 0; i < iters; i++ {
		ds := i % datasets
		b.res[ds] = b.impl.Strnlen(b.data[ds], len(b.data[ds])/2)
	}
}

func (b *strnlenBench) Verify(size, iters int) bool {
	for ds := 0; ds < verified(datasets, iters); ds++ {
		n := 0
		for n < size && b.data[ds][n] != 0 {
			n++
		}
		if b.res[ds] != n {
			return false
		}
	}
	return true
}
