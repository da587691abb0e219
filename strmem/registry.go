// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package strmem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/strmem/errors"
	"github.com/grailbio/strmem/simd"
)

// VectorName is an alias for the narrowest vector configuration.
const VectorName = "vector"

// LMULs lists the register groupings of the vector implementations.
var LMULs = []int{1, 2, 4, 8}

// VLENs lists the vector lengths of the vector implementations.
var VLENs = []int{128, 256, 512, 1024}

// ParseName parses an implementation name. It returns vlen == 0 for the
// standard library implementation, and the vector configuration
// otherwise. Names are "stdlib", "vector" (128-1), or VLEN-LMUL as in
// "256-4".
func ParseName(name string) (vlen, lmul int, err error) {
	switch name {
	case StdName:
		return 0, 0, nil
	case VectorName:
		return simd.MinVLEN, 1, nil
	}
	vs, ls, ok := strings.Cut(name, "-")
	if !ok {
		return 0, 0, errors.E(errors.NotExist, fmt.Sprintf("implementation %q", name))
	}
	if vlen, err = strconv.Atoi(vs); err != nil {
		return 0, 0, errors.E(errors.Invalid, fmt.Sprintf("implementation %q: bad VLEN", name), err)
	}
	if lmul, err = strconv.Atoi(ls); err != nil {
		return 0, 0, errors.E(errors.Invalid, fmt.Sprintf("implementation %q: bad LMUL", name), err)
	}
	return vlen, lmul, nil
}

// Lookup returns a new instance of the named implementation.
func Lookup(name string) (Impl, error) {
	vlen, lmul, err := ParseName(name)
	if err != nil {
		return nil, err
	}
	if vlen == 0 {
		return Std, nil
	}
	impl, err := NewVector(vlen, lmul)
	if err != nil {
		return nil, errors.E(errors.NotExist, fmt.Sprintf("implementation %q", name), err)
	}
	return impl, nil
}

// Names returns the names of all implementations, the standard library
// first.
func Names() []string {
	names := []string{StdName}
	for _, vlen := range VLENs {
		for _, lmul := range LMULs {
			names = append(names, fmt.Sprintf("%d-%d", vlen, lmul))
		}
	}
	return names
}
