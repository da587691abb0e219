// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package log

import (
	"fmt"
	"io"
	golog "log"
	"strings"
	"sync"
)

// TeeOutputter writes every message at or below ConsoleLevel to the
// console logger and every message at or below FileLevel to the file
// logger. It mirrors the classic "info to the terminal, debug to the
// log file" split of benchmark drivers.
type TeeOutputter struct {
	mu           sync.Mutex
	console      *golog.Logger
	file         *golog.Logger
	consoleLevel Level
	fileLevel    Level
}

// NewTeeOutputter returns an outputter writing to console and file.
// Either writer may be nil, in which case that side is dropped.
func NewTeeOutputter(console io.Writer, consoleLevel Level, file io.Writer, fileLevel Level) *TeeOutputter {
	t := &TeeOutputter{consoleLevel: consoleLevel, fileLevel: fileLevel}
	if console != nil {
		t.console = golog.New(console, "", 0)
	} else {
		t.consoleLevel = Off
	}
	if file != nil {
		t.file = golog.New(file, "", golog.LstdFlags|golog.Lmicroseconds)
	} else {
		t.fileLevel = Off
	}
	return t
}

// Level implements Outputter.
func (t *TeeOutputter) Level() Level {
	if t.fileLevel > t.consoleLevel {
		return t.fileLevel
	}
	return t.consoleLevel
}

// Output implements Outputter.
func (t *TeeOutputter) Output(calldepth int, level Level, s string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var err error
	if t.console != nil && level <= t.consoleLevel {
		err = t.console.Output(calldepth+1, s)
	}
	if t.file != nil && level <= t.fileLevel {
		prefix := strings.ToUpper(level.String()) + ": "
		if err2 := t.file.Output(calldepth+1, prefix+s); err == nil && err2 != nil {
			err = fmt.Errorf("log file: %v", err2)
		}
	}
	return err
}
