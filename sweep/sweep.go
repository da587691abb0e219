// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package sweep

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/grailbio/strmem/errors"
	"github.com/grailbio/strmem/log"
	"github.com/grailbio/strmem/shutdown"
)

// Datestamp formats t as a sweep datestamp.
func Datestamp(t time.Time) string {
	return t.Format(DatestampFormat)
}

// SetupLog directs logging to console at info level and to the sweep's
// log file at debug level. The file is closed, and the previous
// outputter restored, by shutdown.Run.
func SetupLog(c Config, datestamp string, console io.Writer) error {
	if err := os.MkdirAll(c.LogDir, 0777); err != nil {
		return errors.E("creating log directory", err)
	}
	f, err := os.Create(c.LogPath(datestamp))
	if err != nil {
		return errors.E("creating log file", err)
	}
	prev := log.SetOutputter(log.NewTeeOutputter(console, log.Info, f, log.Debug))
	shutdown.Register(func() {
		log.SetOutputter(prev)
		if err := f.Close(); err != nil {
			log.Error.Printf("closing log file: %v", err)
		}
	})
	return nil
}

// Options configures Run.
type Options struct {
	// Datestamp names the sweep's files.
	Datestamp string
	// ReportOnly skips measurement and reports existing results.
	ReportOnly bool
	// Summary receives the PASS/FAIL lines; it may be nil.
	Summary io.Writer
}

// Run runs a sweep: it measures every model of c with r, writes the
// results, and writes a report. It returns the report.
func Run(ctx context.Context, c Config, r Runner, opts Options) (*Report, error) {
	runID := uuid.New().String()
	log.Printf("sweep %s, run ID %s", opts.Datestamp, runID)
	log.Debug.Printf("config: %+v", c)
	if opts.ReportOnly {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return WriteReport(ctx, c, opts.Datestamp, runID)
	}
	set, err := NewSet(c)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	if err := set.Run(ctx, r); err != nil {
		return nil, err
	}
	log.Printf("measured %d models in %v, %d failed", len(set.Models), time.Since(start).Round(time.Second), len(set.Failed()))
	if opts.Summary != nil {
		Summary(opts.Summary, set.Models)
	}
	return WriteReport(ctx, c, opts.Datestamp, runID)
}
