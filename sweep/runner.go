// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package sweep

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/grailbio/strmem/errors"
	"github.com/grailbio/strmem/log"
)

// IcountPrefix starts the output line in which a benchmark process
// reports the number of vector instructions it executed.
const IcountPrefix = "icount: "

// Sample is the cost of one benchmark process.
type Sample struct {
	// CPU is the user and system CPU time of the process.
	CPU time.Duration
	// Instructions is the number of vector instructions executed, or
	// zero if the implementation does not count them.
	Instructions uint64
}

// Sub returns the cost of s beyond that of t.
func (s Sample) Sub(t Sample) Sample {
	d := Sample{CPU: s.CPU - t.CPU}
	if s.Instructions > t.Instructions {
		d.Instructions = s.Instructions - t.Instructions
	}
	return d
}

// Runner runs one benchmark process and returns its cost.
type Runner interface {
	Run(ctx context.Context, args []string) (Sample, error)
}

// ExecRunner runs the strmem binary at Path as a child process.
type ExecRunner struct {
	Path string
}

// Run runs the binary with args and returns the sum of the child's user
// and system CPU time, and the instruction count it reported, if any.
func (r ExecRunner) Run(ctx context.Context, args []string) (Sample, error) {
	cmd := exec.CommandContext(ctx, r.Path, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.WaitDelay = time.Second
	err := cmd.Run()
	desc := r.Path + " " + strings.Join(args, " ")
	if ctx.Err() == context.DeadlineExceeded {
		return Sample{}, errors.E(errors.Timeout, desc)
	}
	if err != nil {
		log.Debug.Printf("%s: %v\n%s", desc, err, out.String())
		return Sample{}, errors.E(desc, fmt.Sprintf("output %q", strings.TrimSpace(out.String())), err)
	}
	s := Sample{CPU: cmd.ProcessState.UserTime() + cmd.ProcessState.SystemTime()}
	if s.Instructions, err = parseIcount(out.String()); err != nil {
		return Sample{}, errors.E(desc, err)
	}
	return s, nil
}

// parseIcount returns the instruction count reported in out, or zero.
func parseIcount(out string) (uint64, error) {
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, IcountPrefix); ok {
			n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return 0, errors.E(errors.Invalid, "bad instruction count "+v, err)
			}
			return n, nil
		}
	}
	return 0, nil
}
