// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package log provides level logging for the strmem tools. Messages are
// written by an Outputter: by default Go's standard logger, filtered at
// the level set by SetLevel or the -log flag. The sweep driver installs
// a TeeOutputter so that informational messages reach the console while
// debug messages are kept in a per-run log file.
package log

import (
	"fmt"
	"sync"
)

// An Outputter provides a destination for leveled log output.
type Outputter interface {
	// Level returns the most verbose level the outputter accepts.
	Level() Level

	// Output writes s at the given level. Calldepth counts the stack
	// frames above the caller of Output, as in Go's log.Output.
	Output(calldepth int, level Level, s string) error
}

var (
	mu  sync.RWMutex
	out Outputter = stdOutputter{}
)

// SetOutputter installs o as the destination of log output and returns
// the previous outputter, so that callers can restore it with
//
//	defer log.SetOutputter(log.SetOutputter(o))
func SetOutputter(o Outputter) Outputter {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = o
	return prev
}

func outputter() Outputter {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

// At tells whether messages at level are currently written.
func At(level Level) bool {
	return level <= outputter().Level()
}

// Output writes s at level to the current outputter if it accepts that
// level.
func Output(calldepth int, level Level, s string) error {
	o := outputter()
	if level > o.Level() {
		return nil
	}
	return o.Output(calldepth+1, level, s)
}

// A Level is a log verbosity level. Higher levels are more verbose: an
// outputter at level L writes every message at a level M <= L.
type Level int

const (
	// Off writes nothing.
	Off = Level(-3)
	// Error is the level of failures.
	Error = Level(-2)
	// Info is the default level: progress of sweeps and runs.
	Info = Level(0)
	// Debug adds per-measurement detail.
	Debug = Level(1)
)

var levelNames = map[Level]string{
	Off:   "off",
	Error: "error",
	Info:  "info",
	Debug: "debug",
}

// String returns the name of l, as accepted by ParseLevel.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel returns the level named s.
func ParseLevel(s string) (Level, error) {
	for l, name := range levelNames {
		if name == s {
			return l, nil
		}
	}
	return Off, fmt.Errorf("invalid log level %q", s)
}

// Print writes its arguments, formatted as by fmt.Sprint, at level l.
func (l Level) Print(v ...interface{}) {
	_ = Output(2, l, fmt.Sprint(v...))
}

// Printf writes a message formatted as by fmt.Sprintf at level l.
func (l Level) Printf(format string, v ...interface{}) {
	_ = Output(2, l, fmt.Sprintf(format, v...))
}

// Print writes its arguments, formatted as by fmt.Sprint, at Info level.
func Print(v ...interface{}) {
	_ = Output(2, Info, fmt.Sprint(v...))
}

// Printf writes a message formatted as by fmt.Sprintf at Info level.
func Printf(format string, v ...interface{}) {
	_ = Output(2, Info, fmt.Sprintf(format, v...))
}
