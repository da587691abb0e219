// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command strmem benchmarks and verifies implementations of the C string
// and memory primitives. Each primitive is a subcommand; the sweep and
// report subcommands measure many sizes and implementations and
// summarize the results.
package main

import (
	"flag"
	"strconv"
	"strings"

	"github.com/grailbio/strmem/bench"
	"github.com/grailbio/strmem/cmdutil"
	"github.com/grailbio/strmem/log"
	"github.com/grailbio/strmem/must"
	"github.com/grailbio/strmem/strmem"
	"v.io/x/lib/cmdline"
)

func newCmdRoot() *cmdline.Command {
	root := &cmdline.Command{
		Name:     "strmem",
		Short:    "Benchmark C string and memory primitives",
		LookPath: false,
		Long: `
Command strmem runs microbenchmarks of memcpy, memcmp, memset, memchr,
strlen, strnlen, strchr, strcmp, strcpy, strcat, strncpy and strncat,
using either the standard library or an emulated vector unit with a
given VLEN and LMUL. The process CPU time of a primitive subcommand,
minus that of a run with fewer iterations, is the cost of the
iterations; the sweep subcommand automates that.
`,
	}
	must.True(len(bench.Names()) > 0, "no primitives registered")
	for _, name := range bench.Names() {
		root.Children = append(root.Children, newCmdBench(name))
	}
	root.Children = append(root.Children,
		newCmdVmemcpy(),
		newCmdVstart(),
		newCmdSweep(),
		newCmdReport(),
		newCmdList(),
	)
	return root
}

func newCmdList() *cmdline.Command {
	return &cmdline.Command{
		Runner: cmdutil.RunnerFunc(func(env *cmdline.Env, _ []string) error {
			cmdutil.WriteList(env.Stdout, "primitives", bench.Names())
			cmdutil.WriteList(env.Stdout, "implementations", append(strmem.Names(), strmem.VectorName))
			return nil
		}),
		Name:  "list",
		Short: "List the primitives and implementations",
	}
}

func implFlagHelp() string {
	return "implementation: " + strmem.StdName + ", " + strmem.VectorName +
		", or VLEN-LMUL with VLEN in " + joinInts(strmem.VLENs) + " and LMUL in " + joinInts(strmem.LMULs)
}

func joinInts(v []int) string {
	s := make([]string, len(v))
	for i, n := range v {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, ",")
}

func main() {
	log.AddFlags(flag.CommandLine)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdRoot())
}
