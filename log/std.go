// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package log

import (
	"flag"
	"io"
	golog "log"
	"sync/atomic"
)

var stdLevel atomic.Int32

func init() {
	stdLevel.Store(int32(Info))
}

// SetLevel sets the level of the default outputter.
func SetLevel(level Level) {
	stdLevel.Store(int32(level))
}

// SetOutput sets the destination of the default outputter.
func SetOutput(w io.Writer) {
	golog.SetOutput(w)
}

// SetFlags sets the Go log flags (golog.LstdFlags and friends) of the
// default outputter.
func SetFlags(flags int) {
	golog.SetFlags(flags)
}

// AddFlags registers the -log flag, which sets the level of the default
// outputter, in fs.
func AddFlags(fs *flag.FlagSet) {
	fs.Var(levelFlag{}, "log", "log level: off, error, info or debug")
}

type levelFlag struct{}

func (levelFlag) String() string {
	return Level(stdLevel.Load()).String()
}

func (levelFlag) Set(s string) error {
	l, err := ParseLevel(s)
	if err != nil {
		return err
	}
	SetLevel(l)
	return nil
}

func (levelFlag) Get() interface{} {
	return Level(stdLevel.Load())
}

// stdOutputter writes through Go's standard logger.
type stdOutputter struct{}

func (stdOutputter) Level() Level {
	return Level(stdLevel.Load())
}

func (stdOutputter) Output(calldepth int, level Level, s string) error {
	return golog.Output(calldepth+1, s)
}
