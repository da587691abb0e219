// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package simd

import (
	"fmt"
)

// Reg names a vector register group. A Unit has NumRegs groups, each
// VLMax() bytes wide.
type Reg int

// NumRegs is the number of register groups of a Unit.
const NumRegs = 4

// Register groups.
const (
	V0 Reg = iota
	V8
	V16
	V24
)

// Supported configurations.
const (
	MinVLEN = 128
	MaxVLEN = 1024
	MaxLMUL = 8
)

// Unit is an emulated vector engine with 8-bit elements. It is not safe
// for concurrent use.
type Unit struct {
	vlen, lmul int
	vl         int
	// Vstart is the index of the first element the next memory
	// instruction transfers. It is nonzero only after an instruction
	// was interrupted by a fault.
	Vstart int
	regs   [NumRegs][]byte
	insns  uint64
}

// NewUnit returns a Unit with the given vector length in bits and
// register grouping. vlen must be a power of two in [MinVLEN, MaxVLEN]
// and lmul one of 1, 2, 4 or 8.
func NewUnit(vlen, lmul int) (*Unit, error) {
	if vlen < MinVLEN || vlen > MaxVLEN || vlen&(vlen-1) != 0 {
		return nil, fmt.Errorf("simd: unsupported VLEN %d", vlen)
	}
	if lmul < 1 || lmul > MaxLMUL || lmul&(lmul-1) != 0 {
		return nil, fmt.Errorf("simd: unsupported LMUL %d", lmul)
	}
	u := &Unit{vlen: vlen, lmul: lmul}
	for i := range u.regs {
		u.regs[i] = make([]byte, u.VLMax())
	}
	return u, nil
}

// VLEN returns the vector length in bits.
func (u *Unit) VLEN() int { return u.vlen }

// LMUL returns the register grouping.
func (u *Unit) LMUL() int { return u.lmul }

// VLMax returns the number of bytes processed by one instruction at full
// vector length.
func (u *Unit) VLMax() int { return u.vlen / 8 * u.lmul }

// Instructions returns the number of vector instructions the unit has
// executed. A search reduction counts as two, the mask compare and the
// vfirst.m.
func (u *Unit) Instructions() uint64 { return u.insns }

// VL returns the current vector length.
func (u *Unit) VL() int { return u.vl }

// SetVL sets the vector length for subsequent instructions to
// min(avl, VLMax()) and returns it, like vsetvli.
func (u *Unit) SetVL(avl int) int {
	u.insns++
	if avl < 0 {
		avl = 0
	}
	if max := u.VLMax(); avl > max {
		avl = max
	}
	u.vl = avl
	return avl
}

// Reg returns the active elements of register group r.
func (u *Unit) Reg(r Reg) []byte {
	return u.regs[r][:u.vl]
}

// Load loads VL bytes from src into r (vle8.v). Elements before Vstart
// are left unchanged.
func (u *Unit) Load(r Reg, src []byte) {
	u.insns++
	reg := u.regs[r]
	for u.Vstart < u.vl {
		reg[u.Vstart] = src[u.Vstart]
		u.Vstart++
	}
	u.Vstart = 0
}

// LoadFF is a fault-only-first load (vle8ff.v): it loads VL bytes from
// src, but if src ends before VL bytes, VL is trimmed to len(src) instead
// of faulting. It returns the new VL.
func (u *Unit) LoadFF(r Reg, src []byte) int {
	if len(src) < u.vl {
		u.vl = len(src)
	}
	u.Load(r, src)
	return u.vl
}

// Store stores VL bytes of r into dst (vse8.v), one element at a time.
// Elements before Vstart are not stored again.
func (u *Unit) Store(r Reg, dst []byte) {
	u.insns++
	reg := u.regs[r]
	for u.Vstart < u.vl {
		dst[u.Vstart] = reg[u.Vstart]
		u.Vstart++
	}
	u.Vstart = 0
}

// Broadcast sets every active element of r to val (vmv.v.x).
func (u *Unit) Broadcast(r Reg, val byte) {
	u.insns++
	Memset8(u.regs[r][:u.vl], val)
}

// FirstEq returns the index of the first active element of r equal to
// val, or -1 (vmseq.vx + vfirst.m).
func (u *Unit) FirstEq(r Reg, val byte) int {
	u.insns += 2
	return IndexByte8(u.regs[r][:u.vl], val, 0)
}

// FirstZero returns the index of the first active zero element of r, or
// -1.
func (u *Unit) FirstZero(r Reg) int {
	u.insns += 2
	if i := FirstZero8(u.regs[r][:u.vl], 0); i < u.vl {
		return i
	}
	return -1
}

// FirstNe returns the index of the first active element where r1 and r2
// differ, or -1 (vmsne.vv + vfirst.m).
func (u *Unit) FirstNe(r1, r2 Reg) int {
	u.insns += 2
	if i := FirstUnequal8(u.regs[r1][:u.vl], u.regs[r2][:u.vl], 0); i < u.vl {
		return i
	}
	return -1
}

// FirstNeOrZero returns the index of the first active element where r1
// and r2 differ or r1 is zero, or -1.
func (u *Unit) FirstNeOrZero(r1, r2 Reg) int {
	u.insns += 2
	if i := FirstUnequalOrZero8(u.regs[r1][:u.vl], u.regs[r2][:u.vl], 0); i < u.vl {
		return i
	}
	return -1
}
