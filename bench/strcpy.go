// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"

	"github.com/grailbio/strmem/strmem"
)

func init() {
	register("strcpy", func(impl strmem.Impl, rnd *rand.Rand) Wrapper {
		return &strcpyBench{impl: impl, rnd: rnd}
	})
}

// strcpyBench copies a random string of size characters over a string of
// as many '@'.
type strcpyBench struct {
	impl     strmem.Impl
	rnd      *rand.Rand
	src, dst [][]byte
}

func (b *strcpyBench) Setup(size int) {
	b.src = alloc(datasets, size+1)
	b.dst = alloc(datasets, size+1)
	for ds := range b.src {
		StrInitRandom(b.rnd, b.src[ds], size)
		StrInitConst(b.dst[ds], size, '@')
	}
}

func (b *strcpyBench) Run(iters int) {
	for i := 0; i < iters; i++ {
		ds := i % datasets
		b.impl.Strcpy(b.dst[ds], b.src[ds])
	}
}

// Verify checks every character, terminator included.
func (b *strcpyBench) Verify(size, iters int) bool {
	for ds := 0; ds < verified(datasets, iters); ds++ {
		for i := 0; i <= size; i++ {
			if b.dst[ds][i] != b.src[ds][i] {
				return false
			}
		}
	}
	return true
}
