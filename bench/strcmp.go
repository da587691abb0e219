// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"

	"github.com/grailbio/strmem/strmem"
)

func init() {
	register("strcmp", func(impl strmem.Impl, rnd *rand.Rand) Wrapper {
		return &strcmpBench{impl: impl, rnd: rnd}
	})
}

type strcmpBench struct {
	impl strmem.Impl
	rnd  *rand.Rand
	a, b [][]byte
	res  []int
}

func (b *strcmpBench) Setup(size int) {
	b.a = alloc(smallDatasets, size+1)
	b.b = alloc(smallDatasets, size+1)
	b.res = make([]int, smallDatasets)
	for ds := range b.a {
		StrInitRandom(b.rnd, b.a[ds], size)
		StrInitRandom(b.rnd, b.b[ds], size)
	}
}

func (b *strcmpBench) Run(iters int) {
	for i := 0; i < iters; i++ {
		ds := i % smallDatasets
		b.res[ds] = b.impl.Strcmp(b.a[ds], b.b[ds])
	}
}

func (b *strcmpBench) Verify(size, iters int) bool {
	for ds := 0; ds < verified(smallDatasets, iters); ds++ {
		a, c := b.a[ds], b.b[ds]
		want := 0
		for i := 0; i <= size; i++ {
			if a[i] != c[i] {
				want = sign(int(a[i]) - int(c[i]))
				break
			}
			if a[i] == 0 {
				break
			}
		}
		if sign(b.res[ds]) != want {
			return false
		}
	}
	return true
}
