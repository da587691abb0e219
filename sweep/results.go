// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package sweep

import (
	"io"
	"os"
	"path/filepath"

	"github.com/grailbio/strmem/errors"
	"github.com/grailbio/strmem/tsv"
)

// ResultPath returns the path of the result file of a model.
func ResultPath(dir, benchmark, impl string) string {
	return filepath.Join(dir, benchmark+"-"+impl+".tsv")
}

// WriteResults writes the results of m to its result file in dir.
func WriteResults(dir string, m *Model) (err error) {
	path := ResultPath(dir, m.Benchmark, m.Impl)
	f, err := os.Create(path)
	if err != nil {
		return errors.E("writing results", err)
	}
	defer errors.CleanUp(f.Close, &err)
	w := tsv.NewRowWriter(f)
	for i := range m.Results {
		if err := w.Write(&m.Results[i]); err != nil {
			return errors.E("writing "+path, err)
		}
	}
	return w.Flush()
}

// ReadResults reads the result file of a model from dir. A missing file
// is an errors.NotExist error.
func ReadResults(dir, benchmark, impl string) ([]Result, error) {
	path := ResultPath(dir, benchmark, impl)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.E("reading results", err)
	}
	defer f.Close()
	r := tsv.NewReader(f)
	var results []Result
	for {
		var res Result
		err := r.Read(&res)
		if err == io.EOF {
			return results, nil
		}
		if err != nil {
			return nil, errors.E("reading "+path, err)
		}
		results = append(results, res)
	}
}
