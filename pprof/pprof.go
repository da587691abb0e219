// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package pprof registers command line flags that profile a strmem
// process. A benchmark run started with -cpu-profile=prefix writes
// prefix-00000.pprof when the command returns, which attributes the
// measured loop to the primitive kernels.
package pprof

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	httppprof "net/http/pprof"
	"os"
	"runtime"
	rtpprof "runtime/pprof"
	"sync"
	"sync/atomic"

	"v.io/x/lib/vlog"
)

type profiling struct {
	started int32 // # calls to Start().

	cpuName   string
	heapName  string
	mutexName string
	mutexRate int

	mu sync.Mutex
	// Following fields are guarded by mu.
	cpuFile    *os.File
	generation int

	// HTTP listen address, in form ":12345".
	httpAddr string
	// Actual listen address of the debug HTTP server.
	pprofAddr net.Addr
}

func newProfiling(fs *flag.FlagSet) *profiling {
	p := new(profiling)
	fs.StringVar(&p.httpAddr, "pprof", "", "address for pprof server")
	fs.StringVar(&p.cpuName, "cpu-profile", "", "filename prefix for cpu profiles")
	fs.StringVar(&p.heapName, "heap-profile", "", "filename prefix for heap profiles")
	fs.StringVar(&p.mutexName, "mutex-profile", "", "filename prefix for mutex profiles")
	fs.IntVar(&p.mutexRate, "mutex-profile-rate", 200, "rate for runtime.SetMutexProfileFraction")
	return p
}

func generationSuffix(generation int) string {
	return fmt.Sprintf("-%05v.pprof", generation)
}

// Write writes the enabled profiles to new files, named
// <flag-prefix>-<generation>.pprof.
func (p *profiling) Write(debug int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	suffix := generationSuffix(p.generation)
	p.generation++
	if p.cpuFile != nil {
		p.stopCPU()
		p.startCPU()
	}
	for _, n := range []struct {
		prefix, name string
	}{
		{p.heapName, "heap"},
		{p.mutexName, "mutex"},
	} {
		if n.prefix == "" {
			continue
		}
		if err := writeProfile(n.name, n.prefix+suffix, debug); err != nil {
			vlog.Errorf("pprof: %v", err)
		}
	}
}

func writeProfile(name, path string, debug int) error {
	pr := rtpprof.Lookup(name)
	if pr == nil {
		return fmt.Errorf("no %s profile", name)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pr.WriteTo(f, debug); err != nil {
		f.Close()
		return fmt.Errorf("write %s profile to %s: %v", name, path, err)
	}
	vlog.VI(1).Infof("%v: wrote profile", path)
	return f.Close()
}

// Start starts CPU profiling and the debug HTTP server if they were
// requested. Calling Start more than once is a no-op.
func (p *profiling) Start() {
	if atomic.AddInt32(&p.started, 1) > 1 {
		return
	}
	if p.mutexName != "" || p.httpAddr != "" {
		runtime.SetMutexProfileFraction(p.mutexRate)
	}
	if p.cpuName != "" {
		p.mu.Lock()
		p.startCPU()
		p.mu.Unlock()
	}
	if p.httpAddr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", httppprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", httppprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", httppprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", httppprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", httppprof.Trace)
	l, err := net.Listen("tcp", p.httpAddr)
	if err != nil {
		vlog.Error(err)
		return
	}
	p.pprofAddr = l.Addr()
	vlog.Infof("pprof server listening on %s", p.pprofAddr)
	go func() {
		if err := http.Serve(l, mux); err != nil {
			vlog.Error(err)
		}
	}()
}

// startCPU starts CPU profiling into the current generation's file.
// p.mu must be held.
func (p *profiling) startCPU() {
	f, err := os.Create(p.cpuName + generationSuffix(p.generation))
	if err != nil {
		vlog.Fatal("could not create CPU profile: ", err)
	}
	if err := rtpprof.StartCPUProfile(f); err != nil {
		f.Close()
		vlog.Fatal("could not start CPU profile: ", err)
	}
	p.cpuFile = f
}

// stopCPU stops CPU profiling and flushes its file. p.mu must be held.
func (p *profiling) stopCPU() {
	rtpprof.StopCPUProfile()
	p.cpuFile.Close()
	p.cpuFile = nil
}

var singleton = newProfiling(flag.CommandLine)

// Start starts the profilers specified on the command line through
// -cpu-profile, -heap-profile, -mutex-profile and -pprof. It has no
// effect if none is set, and calling it more than once is a no-op.
func Start() {
	singleton.Start()
}

// HTTPAddr returns the listen address of the debug HTTP server. It is
// useful when the process was started with -pprof=:0.
func HTTPAddr() net.Addr {
	return singleton.pprofAddr
}

// Write writes the enabled profiles to new files. Each call increments
// the generation number embedded in the file names.
func Write(debug int) {
	singleton.Write(debug)
}
