// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package tsv

import (
	"fmt"
	"reflect"
)

type columnFormat struct {
	fieldName  string       // Go struct field name.
	columnName string       // column header; the field name unless tagged.
	kind       reflect.Kind // kind of the field.
	field      int          // index of the field in the struct.
	index      int          // index of the column in a row, 0-based.
}

type rowFormat []columnFormat

func parseRowFormat(typ reflect.Type) (rowFormat, error) {
	if typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("row must be a pointer to struct, but found %v", typ)
	}
	typ = typ.Elem()
	var format rowFormat
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("tsv")
		if !f.IsExported() {
			if tag != "" {
				return nil, fmt.Errorf("unexported field '%s' should not have a tsv tag '%s'", f.Name, tag)
			}
			continue
		}
		if tag == "-" {
			continue
		}
		switch f.Type.Kind() {
		case reflect.Bool, reflect.String, reflect.Float64,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		default:
			return nil, fmt.Errorf("field '%s': unsupported type %v", f.Name, f.Type)
		}
		columnName := f.Name
		if tag != "" {
			columnName = tag
		}
		format = append(format, columnFormat{
			fieldName:  f.Name,
			columnName: columnName,
			kind:       f.Type.Kind(),
			field:      i,
			index:      len(format),
		})
	}
	return format, nil
}
