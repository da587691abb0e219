// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

//go:build linux

package faultcheck

import (
	"fmt"
	"runtime/debug"

	"github.com/grailbio/strmem/errors"
	"github.com/grailbio/strmem/log"
	"github.com/grailbio/strmem/simd"
	"golang.org/x/sys/unix"
)

// Check copies CopyLen bytes through a vector unit to a destination that
// starts index bytes before a read-only page, so that element index is
// the first to fault. index must be in [1, CopyLen).
func Check(index int) (Result, error) {
	if index < 1 || index >= CopyLen {
		return Result{}, errors.E(errors.Invalid, fmt.Sprintf("fault index %d out of range", index))
	}
	pagesize := unix.Getpagesize()
	mapping, err := unix.Mmap(-1, 0, 2*pagesize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return Result{}, errors.E("mmap", err)
	}
	defer func() {
		if err := unix.Munmap(mapping); err != nil {
			log.Error.Printf("munmap: %v", err)
		}
	}()
	if err := unix.Mprotect(mapping[pagesize:], unix.PROT_READ); err != nil {
		return Result{}, errors.E("mprotect", err)
	}

	src := make([]byte, CopyLen)
	for i := range src {
		src[i] = byte(i + 1)
	}
	u, err := simd.NewUnit(simd.MinVLEN, 1)
	if err != nil {
		return Result{}, err
	}
	dst := mapping[pagesize-index:]
	if !vectorCopy(u, dst, src) {
		return Result{}, errors.E(errors.Other, "store to read-only page did not fault")
	}
	r := Result{Vstart: u.Vstart, Expected: index, Stored: true}
	for i := 0; i < index; i++ {
		if dst[i] != src[i] {
			r.Stored = false
		}
	}
	log.Debug.Printf("fault at element %d: %v stored=%v", index, r, r.Stored)
	return r, nil
}

// vectorCopy copies src to dst with u, and reports whether a memory fault
// interrupted the copy. Other panics are propagated.
func vectorCopy(u *simd.Unit, dst, src []byte) (faulted bool) {
	defer debug.SetPanicOnFault(debug.SetPanicOnFault(true))
	defer func() {
		if e := recover(); e != nil {
			if _, ok := e.(interface{ Addr() uintptr }); !ok {
				panic(e)
			}
			faulted = true
		}
	}()
	for pos := 0; pos < len(src); {
		vl := u.SetVL(len(src) - pos)
		u.Load(simd.V0, src[pos:])
		u.Store(simd.V0, dst[pos:])
		pos += vl
	}
	return false
}
