// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/grailbio/strmem/cmdutil"
	"github.com/grailbio/strmem/must"
	"github.com/grailbio/strmem/sweep"
	"v.io/x/lib/cmdline"
)

const sweepLong = `
Runs every selected benchmark with every selected implementation at every
selected size, each measurement in a child strmem process. The iteration
count of each size is scaled from the previous measurement to take about
-target-time CPU seconds, and the time of a warm-up run is subtracted.
Results are written as TSV files to -result-dir, followed by a Markdown
report. Settings may be read from a TOML file with -config; flags given
explicitly override it.
`

func newCmdSweep() *cmdline.Command {
	var f sweep.Flags
	cmd := &cmdline.Command{
		Name:  "sweep",
		Short: "Measure benchmarks across sizes and implementations",
		Long:  sweepLong,
	}
	f.Register(&cmd.Flags)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, _ []string) error {
		datestamp := sweep.Datestamp(time.Now())
		c, err := f.Config(datestamp)
		if err != nil {
			return err
		}
		return runSweep(env, c, datestamp, sweep.Options{Datestamp: datestamp, Summary: env.Stdout})
	})
	return cmd
}

func newCmdReport() *cmdline.Command {
	var (
		f         sweep.Flags
		datestamp string
	)
	cmd := &cmdline.Command{
		Name:  "report",
		Short: "Write the report of existing sweep results",
		Long: `
Writes the Markdown report of the results in -result-dir without running
any benchmark. Benchmarks with missing result files are marked failed.
`,
	}
	f.Register(&cmd.Flags)
	cmd.Flags.StringVar(&datestamp, "datestamp", "", "datestamp of the report (default now)")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, _ []string) error {
		if datestamp == "" {
			datestamp = sweep.Datestamp(time.Now())
		}
		c, err := f.Config(datestamp)
		if err != nil {
			return err
		}
		return runSweep(env, c, datestamp, sweep.Options{Datestamp: datestamp, ReportOnly: true})
	})
	return cmd
}

func runSweep(env *cmdline.Env, c sweep.Config, datestamp string, opts sweep.Options) error {
	if err := sweep.SetupLog(c, datestamp, env.Stderr); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	var r sweep.Runner
	if !opts.ReportOnly {
		exe, err := os.Executable()
		must.Nil(err, "locating the strmem binary")
		r = sweep.ExecRunner{Path: exe}
	}
	report, err := sweep.Run(ctx, c, r, opts)
	if err != nil {
		return err
	}
	cmdutil.Fprintf(env.Stdout, "report: %s", sweep.ReportPath(c, datestamp))
	if len(report.Failed) > 0 {
		return cmdline.ErrExitCode(1)
	}
	return nil
}
