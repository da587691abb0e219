// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmdutil

import (
	"fmt"
	"io"
	"strings"

	"v.io/x/lib/textutil"
)

// WriteWrappedMessage writes the message to w, line wrapped to the
// terminal width. Without a terminal the message is written as is.
func WriteWrappedMessage(w io.Writer, m string) {
	_, cols, err := textutil.TerminalSize()
	if err != nil || cols <= 0 {
		fmt.Fprint(w, m)
		return
	}
	wrapped := textutil.NewUTF8WrapWriter(w, cols)
	fmt.Fprint(wrapped, m)
	wrapped.Flush()
}

// WriteList writes "<title>: a, b, c" followed by a newline, wrapped
// like WriteWrappedMessage.
func WriteList(w io.Writer, title string, items []string) {
	WriteWrappedMessage(w, title+": "+strings.Join(items, ", ")+"\n")
}
