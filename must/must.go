// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package must provides fatal assertions for the strmem binaries, for
// setup steps such as locating the executable or registering
// primitives, after which a measurement process cannot continue.
package must

import (
	"fmt"

	"github.com/grailbio/strmem/log"
)

// Func reports a failed assertion and stops execution. Depth is the
// call depth of the caller of the assertion, relative to Func, as in
// runtime.Caller.
//
// The default logs msg at log.Error and panics with it.
var Func = func(depth int, msg string) {
	_ = log.Output(depth+1, log.Error, msg)
	panic(msg)
}

// Nil asserts that v, typically an error, is nil. Otherwise the failure
// message is v, prefixed by args formatted as by fmt.Sprint.
func Nil(v interface{}, args ...interface{}) {
	if v != nil {
		Func(2, withCause(fmt.Sprint(args...), v))
	}
}

// Nilf is Nil with a prefix formatted as by fmt.Sprintf.
func Nilf(v interface{}, format string, args ...interface{}) {
	if v != nil {
		Func(2, withCause(fmt.Sprintf(format, args...), v))
	}
}

// True asserts b. The failure message is v formatted as by fmt.Sprint,
// or "must: assertion failed" without v.
func True(b bool, v ...interface{}) {
	if b {
		return
	}
	msg := "must: assertion failed"
	if len(v) > 0 {
		msg = fmt.Sprint(v...)
	}
	Func(2, msg)
}

// Truef is True with a message formatted as by fmt.Sprintf.
func Truef(b bool, format string, v ...interface{}) {
	if !b {
		Func(2, fmt.Sprintf(format, v...))
	}
}

func withCause(prefix string, v interface{}) string {
	if prefix == "" {
		return fmt.Sprint(v)
	}
	return prefix + ": " + fmt.Sprint(v)
}
