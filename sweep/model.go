// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package sweep

import (
	"context"
	"strconv"
	"time"

	"github.com/grailbio/strmem/errors"
	"github.com/grailbio/strmem/log"
	"github.com/grailbio/strmem/strmem"
)

// baselineIters are the iteration counts of the calibration run of each
// benchmark, at the first size.
var baselineIters = map[string]int{
	"memchr":  300000,
	"memcmp":  8000000,
	"memcpy":  10000000,
	"memset":  12000000,
	"strcat":  3000000,
	"strchr":  50000,
	"strcmp":  6000000,
	"strcpy":  5000000,
	"strlen":  9000000,
	"strncat": 3000000,
	"strncpy": 4000000,
	"strnlen": 5000000,
}

// BaselineIters returns the calibration iteration count of benchmark.
// Verified runs are slower, so they start at a tenth of the count.
func BaselineIters(benchmark string, verify bool) int {
	iters, ok := baselineIters[benchmark]
	if !ok {
		iters = 1000000
	}
	if verify {
		iters /= 10
	}
	return iters
}

// maxIters bounds scaled iteration counts.
const maxIters = 1 << 40

// ScaleIters returns the iteration count for a measurement at size,
// given that iters iterations at prevSize took prev: the count is
// scaled inversely with size, and by target/prev. A previous time too
// small to measure scales the count up tenfold instead. The result is at
// least 1.
func ScaleIters(iters, prevSize, size int, target, prev time.Duration) int {
	f := float64(iters) * float64(prevSize) / float64(size)
	if prev > 0 {
		f *= target.Seconds() / prev.Seconds()
	} else {
		f *= 10
	}
	switch {
	case f < 1:
		return 1
	case f > maxIters:
		return maxIters
	}
	return int(f)
}

// Result is a single measurement of a model.
type Result struct {
	Benchmark  string  `tsv:"benchmark"`
	Iterations int     `tsv:"iterations"`
	Impl       string  `tsv:"impl"`
	VLEN       int     `tsv:"vlen"`
	LMUL       int     `tsv:"lmul"`
	Stdlib     bool    `tsv:"stdlib"`
	Size       int     `tsv:"size"`
	Time       float64 `tsv:"time_s"`
	NsPerIter  float64 `tsv:"ns_per_iter"`
	// Icount and IcountPerIter are the vector instructions executed by
	// the measured iterations. They are zero for the standard library.
	Icount        uint64  `tsv:"icount"`
	IcountPerIter float64 `tsv:"icount_per_iter"`
}

// Model is a benchmark measured with one implementation.
type Model struct {
	Benchmark string
	Impl      string
	VLEN      int
	LMUL      int

	// Results holds one measurement per size, after Run.
	Results []Result
	// Err is the reason the model failed, if it did.
	Err error
}

// NewModel returns a model for the benchmark and implementation.
func NewModel(benchmark, impl string) (*Model, error) {
	vlen, lmul, err := strmem.ParseName(impl)
	if err != nil {
		return nil, err
	}
	return &Model{Benchmark: benchmark, Impl: impl, VLEN: vlen, LMUL: lmul}, nil
}

// Name returns "<benchmark>-<impl>".
func (m *Model) Name() string {
	return m.Benchmark + "-" + m.Impl
}

// Run measures the model at every size of c. It calibrates at the first
// size, then scales the iteration count of each size from the previous
// measurement. Any failed run fails the model.
func (m *Model) Run(ctx context.Context, c Config, r Runner) error {
	m.Results = nil
	iters := BaselineIters(m.Benchmark, c.Verify)
	prevSize := c.Sizes[0]
	calib, err := m.measure(ctx, c, r, prevSize, iters)
	if err != nil {
		return errors.E(m.Name(), "calibration", err)
	}
	prev := calib.CPU
	for _, size := range c.Sizes {
		iters = ScaleIters(iters, prevSize, size, c.target(), prev)
		s, err := m.measure(ctx, c, r, size, iters)
		if err != nil {
			return errors.E(m.Name(), "size "+strconv.Itoa(size), err)
		}
		t := s.CPU
		m.Results = append(m.Results, Result{
			Benchmark:  m.Benchmark,
			Iterations: iters,
			Impl:       m.Impl,
			VLEN:       m.VLEN,
			LMUL:       m.LMUL,
			Stdlib:     m.VLEN == 0,
			Size:       size,
			Time:       t.Seconds(),
			NsPerIter:  float64(t.Nanoseconds()) / float64(iters),

			Icount:        s.Instructions,
			IcountPerIter: float64(s.Instructions) / float64(iters),
		})
		log.Debug.Printf("%s: size %d, %d iterations, %v, %d instructions", m.Name(), size, iters, t, s.Instructions)
		prev, prevSize = t, size
	}
	return nil
}

// measure returns the cost of iters iterations at size, as the
// difference between a run of warmup+iters iterations and a run of
// warmup iterations.
func (m *Model) measure(ctx context.Context, c Config, r Runner, size, iters int) (Sample, error) {
	warm, err := m.runOnce(ctx, c, r, size, c.Warmup)
	if err != nil {
		return Sample{}, err
	}
	total, err := m.runOnce(ctx, c, r, size, c.Warmup+iters)
	if err != nil {
		return Sample{}, err
	}
	return total.Sub(warm), nil
}

func (m *Model) runOnce(ctx context.Context, c Config, r Runner, size, iters int) (Sample, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()
	return r.Run(ctx, m.Args(c.Verify, size, iters))
}

// Args returns the strmem command line that runs the model once.
func (m *Model) Args(verify bool, size, iters int) []string {
	args := []string{m.Benchmark, "-impl=" + m.Impl}
	if verify {
		args = append(args, "-verify")
	}
	if m.VLEN != 0 {
		args = append(args, "-icount")
	}
	return append(args, strconv.Itoa(size), strconv.Itoa(iters))
}
