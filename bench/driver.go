// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/grailbio/strmem/errors"
	"github.com/grailbio/strmem/log"
	"github.com/grailbio/strmem/strmem"
)

// Options configures a benchmark run.
type Options struct {
	// Impl is the implementation measured. The standard library is used
	// if Impl is nil.
	Impl strmem.Impl
	// Verify enables verification after the measured iterations.
	Verify bool
	// Warmup is the number of iterations run after setup and before the
	// measured iterations.
	Warmup int
	// Seed seeds the random data of the datasets.
	Seed int64
}

// ParseCount parses a size or iteration count. Like C's strtoul with base
// 0, it accepts a 0x prefix for hexadecimal and a leading 0 for octal.
func ParseCount(s string) (int, error) {
	n, err := strconv.ParseUint(s, 0, 63)
	if err != nil {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("bad count %q", s), err)
	}
	return int(n), nil
}

// Run runs the named primitive's benchmark: setup for size, opts.Warmup
// warm-up iterations, then iters measured iterations. With opts.Verify,
// a verification failure is returned as an errors.Integrity error.
//
// The setup cost does not depend on iters, so the cost of the measured
// iterations is the difference between two runs with different counts.
func Run(name string, size, iters int, opts Options) error {
	if size <= 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("%s: size must be positive, got %d", name, size))
	}
	if iters < 0 || opts.Warmup < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("%s: negative iteration count", name))
	}
	factory, err := Lookup(name)
	if err != nil {
		return err
	}
	impl := opts.Impl
	if impl == nil {
		impl = strmem.Std
	}
	w := factory(impl, rand.New(rand.NewSource(opts.Seed)))
	log.Debug.Printf("%s/%s: size %d, %d+%d iterations", name, impl.Name(), size, opts.Warmup, iters)
	w.Setup(size)
	w.Run(opts.Warmup)
	w.Run(iters)
	if opts.Verify && !w.Verify(size, iters) {
		return errors.E(errors.Integrity, fmt.Sprintf("%s/%s: size %d", name, impl.Name(), size))
	}
	return nil
}
