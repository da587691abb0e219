// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bench implements the strmem benchmark wrappers. A wrapper owns
// the data for one primitive: Setup allocates and initializes pools of
// datasets, Run calls the primitive, rotating through the pool, and
// Verify recomputes the expected results by hand, without calling any
// implementation of the primitive.
package bench

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/grailbio/strmem/errors"
	"github.com/grailbio/strmem/strmem"
)

// Dataset pool sizes.
const (
	datasets      = 256
	smallDatasets = 127
)

// Wrapper is the benchmark protocol of a single primitive.
type Wrapper interface {
	// Setup allocates and initializes the datasets for the given size.
	// It does not depend on the iteration count.
	Setup(size int)
	// Run calls the primitive iters times, on dataset i%pool in
	// iteration i.
	Run(iters int)
	// Verify reports whether the state left by the last Run of iters
	// iterations is correct.
	Verify(size, iters int) bool
}

// Factory creates a wrapper measuring impl, with setup data drawn from
// rnd.
type Factory func(impl strmem.Impl, rnd *rand.Rand) Wrapper

var factories = map[string]Factory{}

func register(name string, f Factory) {
	if _, ok := factories[name]; ok {
		panic(fmt.Sprintf("bench: %s registered twice", name))
	}
	factories[name] = f
}

// Lookup returns the wrapper factory of the named primitive.
func Lookup(name string) (Factory, error) {
	f, ok := factories[name]
	if !ok {
		return nil, errors.E(errors.NotExist, fmt.Sprintf("primitive %q", name))
	}
	return f, nil
}

// Names returns the names of all primitives, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Wrap sets up w for size and runs it for iters iterations.
func Wrap(w Wrapper, size, iters int) {
	w.Setup(size)
	w.Run(iters)
}

// verified returns the number of datasets of a pool that were touched by
// iters iterations.
func verified(pool, iters int) int {
	if iters < pool {
		return iters
	}
	return pool
}

// sign returns -1, 0 or 1.
func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
