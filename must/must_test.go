// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package must_test

import (
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/grailbio/strmem/must"
)

func TestDepth(t *testing.T) {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("could not determine current file")
	}
	saved := must.Func
	defer func() { must.Func = saved }()
	calls := 0
	must.Func = func(depth int, msg string) {
		calls++
		_, file, _, ok := runtime.Caller(depth)
		if !ok {
			t.Fatal("could not determine caller of Func")
		}
		if file != thisFile {
			t.Errorf("caller at depth %d is %q; want %q", depth, file, thisFile)
		}
	}
	must.True(false)
	must.Truef(false, "")
	must.Nil(struct{}{})
	must.Nilf(struct{}{}, "")
	must.True(true)
	must.Nil(nil)
	if calls != 4 {
		t.Errorf("got %d failures, want 4", calls)
	}
}

func TestPanic(t *testing.T) {
	defer func() {
		if got, want := recover(), "locating the strmem binary: no such file"; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}()
	must.Nil(errors.New("no such file"), "locating the strmem binary")
}

func Example() {
	saved := must.Func
	defer func() { must.Func = saved }()
	must.Func = func(depth int, msg string) {
		fmt.Println(msg)
	}

	must.Nil(errors.New("mmap: cannot allocate memory"))
	must.Nil(nil)
	must.Nil(errors.New("i/o error"), "opening result file")

	must.True(false)
	must.True(true, "something happened")
	must.Truef(false, "page size %d is not a power of two", 3000)

	// Output:
	// mmap: cannot allocate memory
	// opening result file: i/o error
	// must: assertion failed
	// page size 3000 is not a power of two
}
