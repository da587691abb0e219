// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmdutil

import (
	"flag"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/gops/agent"
	"github.com/grailbio/strmem/log"
	"github.com/grailbio/strmem/pprof"
	"github.com/grailbio/strmem/shutdown"
	"v.io/x/lib/cmdline"
	"v.io/x/lib/vlog"
)

var (
	gopsFlag  = flag.Bool("gops", false, "enable the gops listener, as does setting $GOPS")
	startOnce sync.Once
)

// RunnerFunc adapts a function to a cmdline.Runner. The first command
// run configures vlog from the command line flags, starts the profiles
// selected by the pprof flags and, with -gops, the gops agent. When the
// function returns, or panics, the shutdown hooks run, vlog is flushed
// and the profiles are written. The gops agent is closed by the shutdown
// hooks of the first command and is not restarted for later commands run
// in the same process.
type RunnerFunc func(*cmdline.Env, []string) error

// Run implements cmdline.Runner.
func (f RunnerFunc) Run(env *cmdline.Env, args []string) error {
	startOnce.Do(start)
	begin := time.Now()
	defer func() {
		shutdown.Run()
		vlog.FlushLog()
		pprof.Write(1)
		log.Debug.Printf("%s: %v", strings.Join(args, " "), time.Since(begin))
	}()
	return f(env, args)
}

func start() {
	vlog.ConfigureLibraryLoggerFromFlags()
	pprof.Start()
	if _, ok := os.LookupEnv("GOPS"); !ok && !*gopsFlag {
		return
	}
	if err := agent.Listen(agent.Options{}); err != nil {
		log.Error.Printf("gops: %v", err)
		return
	}
	shutdown.Register(agent.Close)
}
