// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package simd provides word-at-a-time implementations of the byte scans
// and compares underlying the strmem primitives, and Unit, an emulated
// strip-mining vector engine in the style of the RISC-V "V" extension.
//
// Word functions treat a uint64 as eight byte lanes: a lane equal to zero
// is detected with the classic (w - 0x01..01) &^ w & 0x80..80 test, and
// the first such lane is located with a trailing-zero count. Lanes are
// little-endian regardless of the host byte order, so lane i is byte i of
// the slice the word was loaded from.
//
// Unit processes at most VLMax() bytes per instruction, where VLMax is
// VLEN/8*LMUL for 8-bit elements. Memory instructions are element-wise and
// precise: if an access faults, Vstart holds the index of the faulting
// element and every element before it has been transferred. A completed
// instruction resets Vstart to zero. Callers that need to observe faults
// (see package faultcheck) enable runtime/debug.SetPanicOnFault and
// recover the resulting panic.
package simd
