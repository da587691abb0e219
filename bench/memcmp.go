// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"

	"github.com/grailbio/strmem/strmem"
)

func init() {
	register("memcmp", func(impl strmem.Impl, rnd *rand.Rand) Wrapper {
		return &memcmpBench{impl: impl, rnd: rnd}
	})
}

type memcmpBench struct {
	impl strmem.Impl
	rnd  *rand.Rand
	a, b [][]byte
	res  []int
}

func (b *memcmpBench) Setup(size int) {
	b.a = alloc(datasets, size)
	b.b = alloc(datasets, size)
	b.res = make([]int, datasets)
	for ds := range b.a {
		MemInitRandom(b.rnd, b.a[ds])
		MemInitRandom(b.rnd, b.b[ds])
	}
}

func (b *memcmpBench) Run(iters int) {
	for i := 0; i < iters; i++ {
		ds := i % datasets
		b.res[ds] = b.impl.Memcmp(b.a[ds], b.b[ds], len(b.a[ds]))
	}
}

// Verify checks the sign of each result against the first differing byte.
func (b *memcmpBench) Verify(size, iters int) bool {
	for ds := 0; ds < verified(datasets, iters); ds++ {
		want := 0
		for i := 0; i < size; i++ {
			if d := int(b.a[ds][i]) - int(b.b[ds][i]); d != 0 {
				want = sign(d)
				break
			}
		}
		if sign(b.res[ds]) != want {
			return false
		}
	}
	return true
}
