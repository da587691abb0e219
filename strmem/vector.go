// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package strmem

import (
	"fmt"

	"github.com/grailbio/strmem/simd"
)

// vector implements the primitives as strip-mined loops over an emulated
// vector unit. Each loop sets the vector length to what remains, processes
// one register group, and advances by the granted length.
type vector struct {
	u *simd.Unit
}

// NewVector returns the vector implementation for the given vector length
// in bits and register grouping.
func NewVector(vlen, lmul int) (Impl, error) {
	u, err := simd.NewUnit(vlen, lmul)
	if err != nil {
		return nil, err
	}
	return &vector{u}, nil
}

func (v *vector) Name() string {
	return fmt.Sprintf("%d-%d", v.u.VLEN(), v.u.LMUL())
}

func (v *vector) Instructions() uint64 { return v.u.Instructions() }

func (v *vector) Memcpy(dst, src []byte, n int) {
	u := v.u
	for pos := 0; pos < n; {
		vl := u.SetVL(n - pos)
		u.Load(simd.V0, src[pos:])
		u.Store(simd.V0, dst[pos:])
		pos += vl
	}
}

func (v *vector) Memset(s []byte, c byte, n int) {
	u := v.u
	u.SetVL(n)
	u.Broadcast(simd.V0, c)
	for pos := 0; pos < n; {
		vl := u.SetVL(n - pos)
		u.Store(simd.V0, s[pos:])
		pos += vl
	}
}

func (v *vector) Memcmp(s1, s2 []byte, n int) int {
	u := v.u
	for pos := 0; pos < n; {
		vl := u.SetVL(n - pos)
		u.Load(simd.V0, s1[pos:])
		u.Load(simd.V8, s2[pos:])
		if i := u.FirstNe(simd.V0, simd.V8); i >= 0 {
			return int(u.Reg(simd.V0)[i]) - int(u.Reg(simd.V8)[i])
		}
		pos += vl
	}
	return 0
}

func (v *vector) Memchr(s []byte, c byte, n int) int {
	u := v.u
	for pos := 0; pos < n; {
		vl := u.SetVL(n - pos)
		u.Load(simd.V0, s[pos:])
		if i := u.FirstEq(simd.V0, c); i >= 0 {
			return pos + i
		}
		pos += vl
	}
	return -1
}

func (v *vector) Strlen(s []byte) int {
	return v.Strnlen(s, len(s))
}

func (v *vector) Strnlen(s []byte, maxlen int) int {
	u := v.u
	pos := 0
	for pos < maxlen {
		u.SetVL(maxlen - pos)
		vl := u.LoadFF(simd.V0, s[pos:])
		if vl == 0 {
			break
		}
		if i := u.FirstZero(simd.V0); i >= 0 {
			return pos + i
		}
		pos += vl
	}
	return pos
}

func (v *vector) Strchr(s []byte, c byte) int {
	u := v.u
	for pos := 0; ; {
		u.SetVL(u.VLMax())
		vl := u.LoadFF(simd.V0, s[pos:])
		if vl == 0 {
			return -1
		}
		z := u.FirstZero(simd.V0)
		if i := u.FirstEq(simd.V0, c); i >= 0 && (z < 0 || i <= z) {
			return pos + i
		}
		if z >= 0 {
			return -1
		}
		pos += vl
	}
}

func (v *vector) Strcmp(s1, s2 []byte) int {
	u := v.u
	for pos := 0; ; {
		u.SetVL(u.VLMax())
		u.LoadFF(simd.V0, s1[pos:])
		if u.LoadFF(simd.V8, s2[pos:]) == 0 {
			// One string ends at the end of its slice.
			return int(at(s1, pos)) - int(at(s2, pos))
		}
		if i := u.FirstNeOrZero(simd.V0, simd.V8); i >= 0 {
			return int(u.Reg(simd.V0)[i]) - int(u.Reg(simd.V8)[i])
		}
		pos += u.VL()
	}
}

func (v *vector) Strcpy(dst, src []byte) {
	u := v.u
	for pos := 0; ; {
		u.SetVL(u.VLMax())
		vl := u.LoadFF(simd.V0, src[pos:])
		if vl == 0 {
			dst[pos] = 0
			return
		}
		if z := u.FirstZero(simd.V0); z >= 0 {
			u.SetVL(z + 1)
			u.Store(simd.V0, dst[pos:])
			return
		}
		u.Store(simd.V0, dst[pos:])
		pos += vl
	}
}

func (v *vector) Strcat(dst, src []byte) {
	v.Strcpy(dst[v.Strlen(dst):], src)
}

func (v *vector) Strncpy(dst, src []byte, n int) {
	l := v.Strnlen(src, n)
	v.Memcpy(dst, src, l)
	v.Memset(dst[l:], 0, n-l)
}

func (v *vector) Strncat(dst, src []byte, n int) {
	i := v.Strlen(dst)
	l := v.Strnlen(src, n)
	v.Memcpy(dst[i:], src, l)
	dst[i+l] = 0
}
