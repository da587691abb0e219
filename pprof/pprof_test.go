// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package pprof

import (
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/require"
)

func TestProfiles(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "pprof")
	defer cleanup()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	p := newProfiling(fs)
	prefix := filepath.Join(dir, "run")
	require.NoError(t, fs.Parse([]string{
		"-cpu-profile=" + prefix + "-cpu",
		"-heap-profile=" + prefix + "-heap",
	}))
	p.Start()
	p.Start()
	p.Write(1)
	p.mu.Lock()
	p.stopCPU()
	p.mu.Unlock()

	for _, name := range []string{"run-cpu-00000.pprof", "run-cpu-00001.pprof", "run-heap-00000.pprof"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}
}

func TestHTTPServer(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	p := newProfiling(fs)
	require.NoError(t, fs.Parse([]string{"-pprof=127.0.0.1:0"}))
	p.Start()
	require.NotNil(t, p.pprofAddr)
	resp, err := http.Get("http://" + p.pprofAddr.String() + "/debug/pprof/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
