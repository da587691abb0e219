// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"

	"github.com/grailbio/strmem/strmem"
)

func init() {
	register("strcat", func(impl strmem.Impl, rnd *rand.Rand) Wrapper {
		return &strcatBench{impl: impl, rnd: rnd}
	})
}

// strcatBench appends a random string of size characters to a string of
// size '@'. The destination is re-terminated at size before every call,
// so each call appends to the same prefix.
type strcatBench struct {
	impl           strmem.Impl
	rnd            *rand.Rand
	src, dst, orig [][]byte
}

func (b *strcatBench) Setup(size int) {
	b.src = alloc(datasets, size+1)
	b.dst = alloc(datasets, 2*size+1)
	b.orig = alloc(datasets, size+1)
	for ds := range b.src {
		StrInitRandom(b.rnd, b.src[ds], size)
		StrInitConst(b.dst[ds], size, '@')
		// Snapshot by hand; no primitive is trusted in setup.
		for i := 0; i < size; i++ {
			b.orig[ds][i] = b.dst[ds][i]
		}
		b.orig[ds][size] = 0
	}
}

func (b *strcatBench) Run(iters int) {
	for i := 0; i < iters; i++ {
		ds := i % datasets
		dst := b.dst[ds]
		dst[len(b.orig[ds])-1] = 0
		b.impl.Strcat(dst, b.src[ds])
	}
}

func (b *strcatBench) Verify(size, iters int) bool {
	for ds := 0; ds < verified(datasets, iters); ds++ {
		dst := b.dst[ds]
		for i := 0; i < size; i++ {
			if dst[i] != b.orig[ds][i] {
				return false
			}
		}
		for i := 0; i <= size; i++ {
			if dst[size+i] != b.src[ds][i] {
				return false
			}
		}
	}
	return true
}
