// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"

	"github.com/grailbio/strmem/strmem"
)

func init() {
	register("memcpy", func(impl strmem.Impl, rnd *rand.Rand) Wrapper {
		return &memcpyBench{impl: impl, rnd: rnd}
	})
}

// memcpyBench copies a random block of size bytes into a zeroed one.
type memcpyBench struct {
	impl     strmem.Impl
	rnd      *rand.Rand
	src, dst [][]byte
}

func (b *memcpyBench) Setup(size int) {
	b.src = alloc(datasets, size)
	b.dst = alloc(datasets, size)
	for ds := range b.src {
		MemInitRandom(b.rnd, b.src[ds])
		MemInitZero(b.dst[ds])
	}
}

func (b *memcpyBench) Run(iters int) {
	for i := 0; i < iters; i++ {
		ds := i % datasets
		b.impl.Memcpy(b.dst[ds], b.src[ds], len(b.src[ds]))
	}
}

func (b *memcpyBench) Verify(size, iters int) bool {
	for ds := 0; ds < verified(datasets, iters); ds++ {
		for i := 0; i < size; i++ {
			if b.dst[ds][i] != b.src[ds][i] {
				return false
			}
		}
	}
	return true
}
