// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"

	"github.com/grailbio/strmem/strmem"
)

func init() {
	register("strlen", func(impl strmem.Impl, rnd *rand.Rand) Wrapper {
		return &strlenBench{impl: impl, rnd: rnd}
	})
}

type strlenBench struct {
	impl strmem.Impl
	rnd  *rand.Rand
	data [][]byte
	res  []int
}

func (b *strlenBench) Setup(size int) {
	b.data = alloc(datasets, size+1)
	b.res = make([]int, datasets)
	for ds := range b.data {
		StrInitRandom(b.rnd, b.data[ds], size)
	}
}

func (b *strlenBench) Run(iters int) {
	for i := 0; i < iters; i++ {
		ds := i % datasets
		b.res[ds] = b.impl.Strlen(b.data[ds])
	}
}

func (b *strlenBench) Verify(size, iters int) bool {
	for ds := 0; ds < verified(datasets, iters); ds++ {
		n := 0
		for b.data[ds][n] != 0 {
			n++
		}
		if b.res[ds] != n {
			return false
		}
	}
	return true
}
