// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package shutdown runs cleanup hooks when a strmem command returns,
// such as closing a sweep's log file. cmdutil.RunnerFunc calls Run after
// every command.
package shutdown

import (
	"sync"

	"github.com/grailbio/strmem/log"
)

// Func is a cleanup hook.
type Func func()

var (
	mu    sync.Mutex
	hooks []Func
)

// Register adds f to the hooks run by the next call to Run.
func Register(f Func) {
	mu.Lock()
	defer mu.Unlock()
	hooks = append(hooks, f)
}

// Run runs the registered hooks, most recently registered first, and
// forgets them. A panicking hook is logged and does not stop the
// remaining hooks.
func Run() {
	mu.Lock()
	pending := hooks
	hooks = nil
	mu.Unlock()
	for len(pending) > 0 {
		f := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		runHook(f)
	}
}

func runHook(f Func) {
	defer func() {
		if r := recover(); r != nil {
			log.Error.Printf("shutdown hook panicked: %v", r)
		}
	}()
	f()
}
