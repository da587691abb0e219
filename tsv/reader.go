// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package tsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/grailbio/strmem/errors"
)

// Reader reads a TSV file with a header row into structs, matching
// columns to fields by name. Columns without a matching field are
// ignored. Thread compatible.
type Reader struct {
	r *csv.Reader

	nRow int // # of rows read so far, including the header.

	// columnIndex maps column name to column index, from the header.
	columnIndex map[string]int

	cachedRowType   reflect.Type
	cachedRowFormat rowFormat
}

// NewReader creates a new TSV reader that reads from the given input.
func NewReader(in io.Reader) *Reader {
	r := &Reader{r: csv.NewReader(in)}
	r.r.Comma = '\t'
	r.r.ReuseRecord = true
	return r
}

func (r *Reader) wrapError(err error, col columnFormat) error {
	name := fmt.Sprintf("'%s'", col.columnName)
	if col.columnName != col.fieldName {
		name = fmt.Sprintf("'%s' (Go field '%s')", col.columnName, col.fieldName)
	}
	return errors.E(err, fmt.Sprintf("line %d, column %d, %s", r.nRow, col.index, name))
}

// Read reads the next row into v, which must be a pointer to a struct.
// Every field of v must have a column in the header. Read returns io.EOF
// after the last row.
func (r *Reader) Read(v interface{}) error {
	if r.nRow == 0 {
		header, err := r.r.Read()
		if err != nil {
			if err == io.EOF {
				err = errors.E(errors.Invalid, "empty file: could not read the header row")
			}
			return err
		}
		r.nRow++
		r.columnIndex = map[string]int{}
		for i, name := range header {
			r.columnIndex[name] = i
		}
	}
	row, err := r.r.Read()
	if err != nil {
		return err
	}
	r.nRow++
	if typ := reflect.TypeOf(v); typ != r.cachedRowType {
		format, err := parseRowFormat(typ)
		if err != nil {
			return err
		}
		for i := range format {
			col := &format[i]
			var ok bool
			if col.index, ok = r.columnIndex[col.columnName]; !ok {
				return errors.E(errors.Invalid, fmt.Sprintf("column %s does not appear in the header", col.columnName))
			}
		}
		r.cachedRowType = typ
		r.cachedRowFormat = format
	}
	val := reflect.ValueOf(v).Elem()
	for _, col := range r.cachedRowFormat {
		if err := setField(val.Field(col.field), col.kind, row[col.index]); err != nil {
			return r.wrapError(err, col)
		}
	}
	return nil
}

func setField(f reflect.Value, kind reflect.Kind, s string) error {
	switch kind {
	case reflect.Bool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		f.SetBool(v)
	case reflect.String:
		f.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(s, 0, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(s, 0, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetUint(v)
	case reflect.Float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		f.SetFloat(v)
	default:
		return fmt.Errorf("unsupported type %v", kind)
	}
	return nil
}
