// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package tsv reads and writes the tab-separated result tables of
// benchmark sweeps.
//
// Writer appends typed fields one at a time to the current line and
// finishes it with EndLine. RowWriter and Reader map struct fields to
// columns, using the field name or a `tsv:"name"` tag as the column
// header; a `tsv:"-"` tag skips the field. Supported field kinds are
// bool, string, signed and unsigned integers, and float64.
package tsv
