// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"

	"github.com/grailbio/strmem/strmem"
)

func init() {
	register("strncpy", func(impl strmem.Impl, rnd *rand.Rand) Wrapper {
		return &strncpyBench{impl: impl, rnd: rnd}
	})
}

// strncpyBench copies the first size characters of a random string of
// 2*size characters over a string of 2*size '@'. The copy is truncated,
// so the destination is not terminated by the call.
type strncpyBench struct {
	impl     strmem.Impl
	rnd      *rand.Rand
	src, dst [][]byte
}

func (b *strncpyBench) Setup(size int) {
	b.src = alloc(datasets, 2*size+1)
	b.dst = alloc(datasets, 2*size+1)
	for ds := range b.src {
		StrInitRandom(b.rnd, b.src[ds], 2*size)
		StrInitConst(b.dst[ds], 2*size, '@')
	}
}

func (b *strncpyBench) Run(iters int) {
	for i := 0; i < iters; i++ {
		ds := i % datasets
		b.impl.Strncpy(b.dst[ds], b.src[ds], len(b.src[ds])/2)
	}
}

func (b *strncpyBench) Verify(size, iters int) bool {
	for ds := 0; ds < verified(datasets, iters); ds++ {
		dst := b.dst[ds]
		for i := 0; i < size; i++ {
			if dst[i] != b.src[ds][i] {
				return false
			}
		}
		for i := size; i < 2*size; i++ {
			if dst[i] != '@' {
				return false
			}
		}
		if dst[2*size] != 0 {
			return false
		}
	}
	return true
}
