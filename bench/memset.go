// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"

	"github.com/grailbio/strmem/strmem"
)

func init() {
	register("memset", func(impl strmem.Impl, rnd *rand.Rand) Wrapper {
		return &memsetBench{impl: impl, rnd: rnd}
	})
}

// memsetBench sets dataset ds to the byte value ds, so that each dataset
// carries a distinct value.
type memsetBench struct {
	impl strmem.Impl
	rnd  *rand.Rand
	data [][]byte
}

func (b *memsetBench) Setup(size int) {
	b.data = alloc(datasets, size)
	for ds := range b.data {
		MemInitRandom(b.rnd, b.data[ds])
	}
}

func (b *memsetBench) Run(iters int) {
	for i := 0; i < iters; i++ {
		ds := i % datasets
		b.impl.Memset(b.data[ds], byte(ds), len(b.data[ds]))
	}
}

func (b *memsetBench) Verify(size, iters int) bool {
	for ds := 0; ds < verified(datasets, iters); ds++ {
		for i := 0; i < size; i++ {
			if b.data[ds][i] != byte(ds) {
				return false
			}
		}
	}
	return true
}
