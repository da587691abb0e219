// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/grailbio/strmem/bench"
	"github.com/grailbio/strmem/cmdutil"
	"github.com/grailbio/strmem/errors"
	"github.com/grailbio/strmem/faultcheck"
	"github.com/grailbio/strmem/strmem"
	"github.com/grailbio/strmem/sweep"
	"v.io/x/lib/cmdline"
)

type benchFlags struct {
	impl   string
	verify bool
	warmup int
	seed   int64
	icount bool
}

func newCmdBench(name string) *cmdline.Command {
	var f benchFlags
	cmd := &cmdline.Command{
		Runner: cmdutil.RunnerFunc(func(env *cmdline.Env, args []string) error {
			return runBench(env, name, f, args)
		}),
		Name:     name,
		Short:    "Benchmark " + name,
		ArgsName: "<size> <iterations>",
		ArgsLong: `
<size> is the data size in bytes and <iterations> the number of measured
calls. Both accept a 0x prefix for hexadecimal and a leading 0 for octal.
`,
	}
	cmd.Flags.StringVar(&f.impl, "impl", strmem.StdName, implFlagHelp())
	cmd.Flags.BoolVar(&f.verify, "verify", false, "verify the results of the measured iterations")
	cmd.Flags.IntVar(&f.warmup, "warmup", 0, "number of iterations run before the measured ones")
	cmd.Flags.Int64Var(&f.seed, "seed", 1, "seed of the random data")
	cmd.Flags.BoolVar(&f.icount, "icount", false, "print the number of vector instructions executed, for vector implementations")
	return cmd
}

func runBench(env *cmdline.Env, name string, f benchFlags, args []string) error {
	if len(args) != 2 {
		fmt.Fprintf(env.Stdout, "Usage: strmem %s [flags] <size> <iterations>\n", name)
		return cmdline.ErrExitCode(1)
	}
	size, err := bench.ParseCount(args[0])
	if err != nil {
		return err
	}
	iters, err := bench.ParseCount(args[1])
	if err != nil {
		return err
	}
	impl, err := strmem.Lookup(f.impl)
	if err != nil {
		return err
	}
	err = bench.Run(name, size, iters, bench.Options{
		Impl:   impl,
		Verify: f.verify,
		Warmup: f.warmup,
		Seed:   f.seed,
	})
	if errors.Is(errors.Integrity, err) {
		fmt.Fprintln(env.Stdout, "ERROR: Verification failed")
		return cmdline.ErrExitCode(1)
	}
	if err != nil {
		return err
	}
	if c, ok := impl.(strmem.Counter); ok && f.icount {
		fmt.Fprintf(env.Stdout, "%s%d\n", sweep.IcountPrefix, c.Instructions())
	}
	return nil
}

func newCmdVmemcpy() *cmdline.Command {
	var (
		implName string
		seed     int64
	)
	cmd := &cmdline.Command{
		Runner: cmdutil.RunnerFunc(func(env *cmdline.Env, args []string) error {
			return runVmemcpy(env, implName, seed, args)
		}),
		Name:     "vmemcpy",
		Short:    "Copy one block repeatedly and check the copy",
		ArgsName: "<size> <iterations> [<result-file>]",
		ArgsLong: `
Copies a random block of <size> bytes <iterations> times, after ` + strconv.Itoa(bench.VmemcpyWarmup) + `
warm-up copies. With <result-file>, the copy is compared with the source
and a PASS or FAIL line is appended to the file; a FAIL also lists both
blocks and exits with status 1.
`,
	}
	cmd.Flags.StringVar(&implName, "impl", strmem.VectorName, implFlagHelp())
	cmd.Flags.Int64Var(&seed, "seed", 1, "seed of the random data")
	return cmd
}

func runVmemcpy(env *cmdline.Env, implName string, seed int64, args []string) (err error) {
	if len(args) != 2 && len(args) != 3 {
		fmt.Fprintln(env.Stdout, "Usage: strmem vmemcpy [flags] <size> <iterations> [<result-file>]")
		return cmdline.ErrExitCode(1)
	}
	size, err := strconv.ParseInt(args[0], 0, 64)
	if err != nil {
		return errors.E(errors.Invalid, "bad size "+args[0], err)
	}
	if size <= 0 {
		fmt.Fprintln(env.Stdout, "error: Data length <= 0")
		return cmdline.ErrExitCode(1)
	}
	iters, err := bench.ParseCount(args[1])
	if err != nil {
		return err
	}
	impl, err := strmem.Lookup(implName)
	if err != nil {
		return err
	}
	var check *os.File
	if len(args) == 3 {
		if check, err = os.OpenFile(args[2], os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666); err != nil {
			return errors.E("opening result file", err)
		}
		defer errors.CleanUp(check.Close, &err)
	}
	var ok bool
	if check != nil {
		ok, err = bench.Vmemcpy(impl, int(size), iters, seed, check)
	} else {
		ok, err = bench.Vmemcpy(impl, int(size), iters, seed, nil)
	}
	if err != nil {
		return err
	}
	if !ok {
		return cmdline.ErrExitCode(1)
	}
	return nil
}

func newCmdVstart() *cmdline.Command {
	return &cmdline.Command{
		Runner: cmdutil.RunnerFunc(runVstart),
		Name:   "vstart",
		Short:  "Check the vstart register after a faulting vector store",
		Long: `
Copies ` + strconv.Itoa(faultcheck.CopyLen) + ` bytes with a vector store that crosses into a read-only page
after ` + strconv.Itoa(faultcheck.FailedIndex) + ` bytes, and checks that vstart holds the index of the
faulting element. Exits with status 1 on a mismatch.
`,
	}
}

// runVstart is only reached without arguments; cmdline rejects them for
// commands with no ArgsName.
func runVstart(env *cmdline.Env, _ []string) error {
	res, err := faultcheck.Run()
	if err != nil {
		return err
	}
	cmdutil.Fprintf(env.Stdout, "%s", res)
	if !res.OK() {
		return cmdline.ErrExitCode(1)
	}
	return nil
}
