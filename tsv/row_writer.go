// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package tsv

import (
	"fmt"
	"io"
	"reflect"
)

// RowWriter writes structs to TSV files using field names or "tsv" tags
// as TSV column headers.
type RowWriter struct {
	w               *Writer
	headerDone      bool
	cachedRowType   reflect.Type
	cachedRowFormat rowFormat
}

// NewRowWriter constructs a writer.
//
// User must call Flush() after last Write().
func NewRowWriter(w io.Writer) *RowWriter {
	return &RowWriter{w: NewWriter(w)}
}

// Write writes a TSV row containing the values of v's exported fields.
// v must be a pointer to a struct. The header row is written, from v's
// type, before the first row.
func (w *RowWriter) Write(v interface{}) error {
	typ := reflect.TypeOf(v)
	if typ != w.cachedRowType {
		rowFormat, err := parseRowFormat(typ)
		if err != nil {
			return err
		}
		w.cachedRowType = typ
		w.cachedRowFormat = rowFormat
	}
	if !w.headerDone {
		for _, col := range w.cachedRowFormat {
			w.w.WriteString(col.columnName)
		}
		if err := w.w.EndLine(); err != nil {
			return err
		}
		w.headerDone = true
	}
	val := reflect.ValueOf(v).Elem()
	for _, col := range w.cachedRowFormat {
		f := val.Field(col.field)
		switch col.kind {
		case reflect.Bool:
			w.w.WriteBool(f.Bool())
		case reflect.String:
			w.w.WriteString(f.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			w.w.WriteInt64(f.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			w.w.WriteUint64(f.Uint())
		case reflect.Float64:
			w.w.WriteFloat64(f.Float(), 'g', -1)
		default:
			return fmt.Errorf("unsupported type %v", col.kind)
		}
	}
	return w.w.EndLine()
}

// Flush flushes all previously-written rows.
func (w *RowWriter) Flush() error {
	return w.w.Flush()
}
