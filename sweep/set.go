// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package sweep

import (
	"context"
	"os"
	"time"

	"github.com/grailbio/strmem/errors"
	"github.com/grailbio/strmem/log"
	"golang.org/x/sync/errgroup"
)

// Set is every model of a sweep.
type Set struct {
	Config Config
	Models []*Model
}

// NewSet returns the models for every benchmark and implementation of c.
func NewSet(c Config) (*Set, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s := &Set{Config: c}
	for _, benchmark := range c.Benchmarks {
		for _, impl := range c.Impls {
			m, err := NewModel(benchmark, impl)
			if err != nil {
				return nil, err
			}
			s.Models = append(s.Models, m)
		}
	}
	return s, nil
}

// Run runs the models concurrently, at most Config.Parallelism at a time,
// and writes the results of every successful model to Config.ResultDir.
// A failed model is logged and recorded in its Err field; Run returns an
// error only if the result directory cannot be written or ctx is done.
func (s *Set) Run(ctx context.Context, r Runner) error {
	if err := os.MkdirAll(s.Config.ResultDir, 0777); err != nil {
		return errors.E("creating result directory", err)
	}
	log.Printf("running %d models, %d at a time", len(s.Models), s.Config.Parallelism)
	var (
		g    errgroup.Group
		once errors.Once
	)
	g.SetLimit(s.Config.Parallelism)
	p := newProgress(len(s.Models), s.Config.Parallelism, time.Now())
	for _, m := range s.Models {
		m := m
		g.Go(func() error {
			if ctx.Err() != nil {
				m.Err = ctx.Err()
				return nil
			}
			p.begin(m.Name(), time.Now())
			m.Err = m.Run(ctx, s.Config, r)
			p.end(m.Name(), time.Now())
			if m.Err != nil {
				log.Error.Printf("%s failed: %v", m.Name(), m.Err)
				return nil
			}
			log.Printf("%s done: %d sizes", m.Name(), len(m.Results))
			once.Set(WriteResults(s.Config.ResultDir, m))
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return errors.E(err)
	}
	return once.Err()
}

// Failed returns the models that failed.
func (s *Set) Failed() []*Model {
	var failed []*Model
	for _, m := range s.Models {
		if m.Err != nil {
			failed = append(failed, m)
		}
	}
	return failed
}
