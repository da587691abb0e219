// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package tsv

import (
	"bufio"
	"io"
	"strconv"
)

// Writer builds TSV lines one field at a time. Fields are separated by
// tabs; EndLine terminates the line.
type Writer struct {
	w      *bufio.Writer
	line   []byte
	fields int
}

// NewWriter returns a Writer that writes lines to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), line: make([]byte, 0, 128)}
}

func (w *Writer) field() {
	if w.fields > 0 {
		w.line = append(w.line, '\t')
	}
	w.fields++
}

// WriteString adds s as a field. S must not contain tabs or newlines.
func (w *Writer) WriteString(s string) {
	w.field()
	w.line = append(w.line, s...)
}

// WriteBool adds "true" or "false".
func (w *Writer) WriteBool(b bool) {
	w.field()
	w.line = strconv.AppendBool(w.line, b)
}

// WriteInt64 adds i in decimal.
func (w *Writer) WriteInt64(i int64) {
	w.field()
	w.line = strconv.AppendInt(w.line, i, 10)
}

// WriteUint64 adds u in decimal.
func (w *Writer) WriteUint64(u uint64) {
	w.field()
	w.line = strconv.AppendUint(w.line, u, 10)
}

// WriteFloat64 adds f, formatted as by strconv.FormatFloat(f, fmt, prec, 64).
func (w *Writer) WriteFloat64(f float64, fmt byte, prec int) {
	w.field()
	w.line = strconv.AppendFloat(w.line, f, fmt, prec, 64)
}

// EndLine writes the current line, which may be empty, and starts a new
// one.
func (w *Writer) EndLine() error {
	w.line = append(w.line, '\n')
	_, err := w.w.Write(w.line)
	w.line, w.fields = w.line[:0], 0
	return err
}

// Flush writes the buffered lines to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
