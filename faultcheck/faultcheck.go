// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package faultcheck checks that the vector unit restarts precisely after
// a fault. It makes an 8-byte vector copy whose destination starts a few
// bytes before a read-only page, and checks that the faulting store left
// Vstart at the first element on the protected page, with every element
// before it stored.
package faultcheck

import "fmt"

// FailedIndex is the element of the copy that lands on the read-only
// page in Run.
const FailedIndex = 4

// CopyLen is the length of the faulting copy.
const CopyLen = 8

// Result is the outcome of a fault check.
type Result struct {
	// Vstart is the value of the Vstart register observed after the
	// fault.
	Vstart int
	// Expected is the index of the faulting element.
	Expected int
	// Stored reports whether the elements before the faulting one were
	// written.
	Stored bool
}

// OK reports whether the unit restarted precisely.
func (r Result) OK() bool {
	return r.Vstart == r.Expected && r.Stored
}

func (r Result) String() string {
	return fmt.Sprintf("vstart[0x%x] expected vstart[0x%x]", r.Vstart, r.Expected)
}

// Run checks the fault at FailedIndex.
func Run() (Result, error) {
	return Check(FailedIndex)
}
