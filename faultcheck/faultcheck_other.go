// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

//go:build !linux

package faultcheck

import (
	"runtime"

	"github.com/grailbio/strmem/errors"
)

// Check is not supported on this platform.
func Check(index int) (Result, error) {
	return Result{}, errors.E(errors.NotSupported, "fault check on "+runtime.GOOS)
}
