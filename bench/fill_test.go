// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFill(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	s := make([]byte, 1001)
	StrInitRandom(rnd, s, 1000)
	for i, c := range s[:1000] {
		if c < 1 || c > 127 {
			t.Fatalf("byte %d: %d out of range", i, c)
		}
	}
	assert.EqualValues(t, 0, s[1000])

	StrInitConst(s, 10, '@')
	assert.Equal(t, "@@@@@@@@@@\x00", string(s[:11]))

	a, b := make([]byte, 64), make([]byte, 64)
	MemInitRandom(rand.New(rand.NewSource(1)), a)
	MemInitRandom(rand.New(rand.NewSource(1)), b)
	assert.Equal(t, a, b)
	MemInitZero(a)
	assert.Equal(t, make([]byte, 64), a)
}

func TestAlloc(t *testing.T) {
	bufs := alloc(3, 4)
	assert.Len(t, bufs, 3)
	for _, b := range bufs {
		assert.Len(t, b, 4)
		assert.Equal(t, 4, cap(b))
	}
	bufs[0] = append(bufs[0], 'x')
	assert.EqualValues(t, 0, bufs[1][0])
}

// With no iterations, the destinations are left as set up.
func TestPostSetupState(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	cpy := &memcpyBench{impl: nil, rnd: rnd}
	Wrap(cpy, 8, 0)
	for _, d := range cpy.dst {
		assert.Equal(t, make([]byte, 8), d)
	}
	assert.True(t, cpy.Verify(8, 0))

	cat := &strcatBench{rnd: rnd}
	Wrap(cat, 4, 0)
	for ds, d := range cat.dst {
		assert.Equal(t, "@@@@\x00\x00\x00\x00\x00", string(d))
		assert.Equal(t, "@@@@\x00", string(cat.orig[ds]))
	}
	assert.True(t, cat.Verify(4, 0))

	ncpy := &strncpyBench{rnd: rnd}
	Wrap(ncpy, 2, 0)
	for _, d := range ncpy.dst {
		assert.Equal(t, "@@@@\x00", string(d))
	}
}

func TestVerified(t *testing.T) {
	assert.Equal(t, 0, verified(256, 0))
	assert.Equal(t, 10, verified(256, 10))
	assert.Equal(t, 127, verified(127, 1000))
}
