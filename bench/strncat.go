// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"

	"github.com/grailbio/strmem/strmem"
)

func init() {
	register("strncat", func(impl strmem.Impl, rnd *rand.Rand) Wrapper {
		return &strncatBench{impl: impl, rnd: rnd}
	})
}

// strncatBench appends at most size characters of a random string of
// 2*size characters to a string of size '@'.
type strncatBench struct {
	impl           strmem.Impl
	rnd            *rand.Rand
	src, dst, orig [][]byte
}

func (b *strncatBench) Setup(size int) {
	b.src = alloc(datasets, 2*size+1)
	b.dst = alloc(datasets, 2*size+1)
	b.orig = alloc(datasets, size+1)
	for ds := range b.src {
		StrInitRandom(b.rnd, b.src[ds], 2*size)
		StrInitConst(b.dst[ds], size, '@')
		for i := 0; i < size; i++ {
			b.orig[ds][i] = b.dst[ds][i]
		}
		b.orig[ds][size] = 0
	}
}

func (b *strncatBench) Run(iters int) {
	for i := 0; i < iters; i++ {
		ds := i % datasets
		size := len(b.orig[ds]) - 1
		b.dst[ds][size] = 0
		b.impl.Strncat(b.dst[ds], b.src[ds], size)
	}
}

// Verify checks the untouched prefix, the appended characters, and the
// terminator at the truncation boundary.
func (b *strncatBench) Verify(size, iters int) bool {
	for ds := 0; ds < verified(datasets, iters); ds++ {
		dst := b.dst[ds]
		for i := 0; i < size; i++ {
			if dst[i] != b.orig[ds][i] {
				return false
			}
		}
		for i := 0; i < size; i++ {
			if dst[size+i] != b.src[ds][i] {
				return false
			}
		}
		if dst[2*size] != 0 {
			return false
		}
	}
	return true
}
