// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package cmdutil provides the command plumbing shared by the strmem
// subcommands: the cmdline runner adapter and output helpers.
package cmdutil

import (
	"fmt"
	"io"
	"strings"
)

// Fprintf writes the formatted message to w, ending it with exactly one
// newline.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	m := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(w, m)
}
