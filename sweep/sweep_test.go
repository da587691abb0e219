// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package sweep

import (
	"bytes"
	"context"
	"flag"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/go-test/deep"
	"github.com/grailbio/strmem/errors"
	"github.com/grailbio/strmem/shutdown"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

// fakeRunner charges one microsecond per byte and iteration, plus a
// fixed startup cost that the warm-up subtraction cancels. With -icount,
// it reports size+1 instructions per iteration, plus a fixed count.
type fakeRunner struct {
	mu   sync.Mutex
	runs [][]string
	fail string
}

func (r *fakeRunner) Run(ctx context.Context, args []string) (Sample, error) {
	r.mu.Lock()
	r.runs = append(r.runs, append([]string(nil), args...))
	r.mu.Unlock()
	if r.fail != "" && args[1] == "-impl="+r.fail {
		return Sample{}, errors.New("exit status 1")
	}
	size, err := strconv.Atoi(args[len(args)-2])
	if err != nil {
		return Sample{}, err
	}
	iters, err := strconv.Atoi(args[len(args)-1])
	if err != nil {
		return Sample{}, err
	}
	s := Sample{CPU: 10*time.Millisecond + time.Duration(size*iters)*time.Microsecond}
	for _, arg := range args {
		if arg == "-icount" {
			s.Instructions = 100 + uint64((size+1)*iters)
		}
	}
	return s, nil
}

func testConfig(dir string) Config {
	c := DefaultConfig("2024-01-02-03-04-05")
	c.Benchmarks = []string{"memcpy"}
	c.Impls = []string{"stdlib"}
	c.Sizes = []int{1, 4, 16}
	c.TargetTime = 1
	c.Parallelism = 2
	c.ResultDir = filepath.Join(dir, "results")
	c.LogDir = filepath.Join(dir, "logs")
	return c
}

func TestScaleIters(t *testing.T) {
	expect.EQ(t, ScaleIters(1000, 1, 2, 10*time.Second, 5*time.Second), 1000)
	expect.EQ(t, ScaleIters(1000, 4, 4, time.Second, 4*time.Second), 250)
	expect.EQ(t, ScaleIters(1000, 1, 1, time.Second, 0), 10000)
	expect.EQ(t, ScaleIters(1, 1, 100000, time.Second, time.Second), 1)
	expect.EQ(t, ScaleIters(1<<40, 1000, 1, time.Hour, time.Nanosecond), maxIters)
}

func TestBaselineIters(t *testing.T) {
	expect.EQ(t, BaselineIters("memcpy", false), 10000000)
	expect.EQ(t, BaselineIters("memcpy", true), 1000000)
	expect.EQ(t, BaselineIters("strchr", false), 50000)
}

func TestModelRun(t *testing.T) {
	c := testConfig("")
	m, err := NewModel("memcpy", "stdlib")
	assert.NoError(t, err)
	r := new(fakeRunner)
	assert.NoError(t, m.Run(context.Background(), c, r))

	assert.EQ(t, len(m.Results), 3)
	for i, want := range []struct{ size, iters int }{
		{1, 1000000},
		{4, 250000},
		{16, 62500},
	} {
		res := m.Results[i]
		expect.EQ(t, res.Size, want.size)
		expect.EQ(t, res.Iterations, want.iters)
		expect.EQ(t, res.Time, 1.0)
		expect.EQ(t, res.Stdlib, true)
		expect.EQ(t, res.NsPerIter, 1e9/float64(want.iters))
		expect.EQ(t, res.Icount, uint64(0))
	}
	// Calibration plus three sizes, each a warm-up and a full run.
	assert.EQ(t, len(r.runs), 8)
	expect.EQ(t, r.runs[0], []string{"memcpy", "-impl=stdlib", "1", "1"})
	expect.EQ(t, r.runs[1], []string{"memcpy", "-impl=stdlib", "1", "10000001"})
}

func TestModelRunIcount(t *testing.T) {
	c := testConfig("")
	c.Warmup = 3
	m, err := NewModel("memcpy", "128-1")
	assert.NoError(t, err)
	r := new(fakeRunner)
	assert.NoError(t, m.Run(context.Background(), c, r))

	assert.EQ(t, len(m.Results), 3)
	for _, res := range m.Results {
		expect.EQ(t, res.Stdlib, false)
		expect.EQ(t, res.Icount, uint64((res.Size+1)*res.Iterations))
		expect.EQ(t, res.IcountPerIter, float64(res.Size+1))
	}
	expect.EQ(t, r.runs[0], []string{"memcpy", "-impl=128-1", "-icount", "1", "3"})
}

func TestSampleSub(t *testing.T) {
	s := Sample{CPU: 3 * time.Second, Instructions: 500}
	expect.EQ(t, s.Sub(Sample{CPU: time.Second, Instructions: 200}), Sample{CPU: 2 * time.Second, Instructions: 300})
	expect.EQ(t, s.Sub(Sample{Instructions: 600}).Instructions, uint64(0))
}

func TestModelArgs(t *testing.T) {
	m, err := NewModel("strlen", "256-4")
	assert.NoError(t, err)
	expect.EQ(t, m.VLEN, 256)
	expect.EQ(t, m.LMUL, 4)
	expect.EQ(t, m.Args(true, 8, 100), []string{"strlen", "-impl=256-4", "-verify", "-icount", "8", "100"})
	m, err = NewModel("strlen", "stdlib")
	assert.NoError(t, err)
	expect.EQ(t, m.Args(false, 8, 100), []string{"strlen", "-impl=stdlib", "8", "100"})
	_, err = NewModel("strlen", "libc")
	expect.True(t, errors.Is(errors.NotExist, err))
}

func TestSweep(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "sweep")
	defer cleanup()
	c := testConfig(dir)
	c.Benchmarks = []string{"memcpy", "strlen"}
	c.Impls = []string{"stdlib", "128-1"}
	r := &fakeRunner{fail: "128-1"}
	color.NoColor = true
	var summary bytes.Buffer
	report, err := Run(context.Background(), c, r, Options{Datestamp: "2024-01-02-03-04-05", Summary: &summary})
	assert.NoError(t, err)

	expect.HasSubstr(t, summary.String(), "PASS memcpy-stdlib\n")
	expect.HasSubstr(t, summary.String(), "FAIL memcpy-128-1: ")
	expect.HasSubstr(t, summary.String(), "PASS strlen-stdlib\n")

	results, err := ReadResults(c.ResultDir, "strlen", "stdlib")
	assert.NoError(t, err)
	expect.EQ(t, len(results), 3)
	_, err = ReadResults(c.ResultDir, "strlen", "128-1")
	expect.True(t, errors.Is(errors.NotExist, err))

	expect.True(t, report.Failed["memcpy"])
	expect.True(t, report.Failed["strlen"])
	data, err := os.ReadFile(ReportPath(c, "2024-01-02-03-04-05"))
	assert.NoError(t, err)
	md := string(data)
	expect.HasSubstr(t, md, "- memcpy **(failed)**\n")
	expect.HasSubstr(t, md, "| Size | stdlib | 128-1 |\n")
	expect.HasSubstr(t, md, "| 1 B | 1000.00 | - |\n")
	expect.HasSubstr(t, md, "| 16 B | 16000.00 | - |\n")
	expect.HasSubstr(t, md, "- Run ID: "+report.RunID+"\n")

	// Reporting again from the files gives the same tables.
	report2, err := Run(context.Background(), c, nil, Options{Datestamp: "2024-01-02-03-04-05", ReportOnly: true})
	assert.NoError(t, err)
	expect.EQ(t, report2.Failed, report.Failed)
	data2, err := os.ReadFile(ReportPath(c, "2024-01-02-03-04-05"))
	assert.NoError(t, err)
	expect.EQ(t, strings.SplitN(string(data2), "## Benchmarks", 2)[1], strings.SplitN(md, "## Benchmarks", 2)[1])
}

func TestSweepInstructions(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "sweep")
	defer cleanup()
	c := testConfig(dir)
	c.Impls = []string{"stdlib", "256-1"}
	report, err := Run(context.Background(), c, new(fakeRunner), Options{Datestamp: "d"})
	assert.NoError(t, err)
	expect.EQ(t, len(report.Failed), 0)

	results, err := ReadResults(c.ResultDir, "memcpy", "256-1")
	assert.NoError(t, err)
	assert.EQ(t, len(results), 3)
	expect.EQ(t, results[1].Icount, uint64(5*results[1].Iterations))
	data, err := os.ReadFile(ReportPath(c, "d"))
	assert.NoError(t, err)
	md := string(data)
	expect.HasSubstr(t, md, "| Size | stdlib | 256-1 |\n")
	expect.HasSubstr(t, md, "\nVector instructions per iteration.\n\n| Size | 256-1 |\n|---:|---:|\n| 1 B | 2.00 |\n| 4 B | 5.00 |\n| 16 B | 17.00 |\n")
}

func TestReportMissingResultDir(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "sweep")
	defer cleanup()
	c := testConfig(dir)
	c.ResultDir = filepath.Join(dir, "missing", "results")
	report, err := Run(context.Background(), c, nil, Options{Datestamp: "d", ReportOnly: true})
	assert.NoError(t, err)
	expect.True(t, report.Failed["memcpy"])
	data, err := os.ReadFile(ReportPath(c, "d"))
	assert.NoError(t, err)
	expect.HasSubstr(t, string(data), "- memcpy **(failed)**\n")
	expect.HasSubstr(t, string(data), "No results.\n")
}

func TestSweepCanceled(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "sweep")
	defer cleanup()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testConfig(dir), new(fakeRunner), Options{Datestamp: "x"})
	expect.True(t, errors.Is(errors.Canceled, err))
}

func TestSetupLog(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "sweep")
	defer cleanup()
	c := testConfig(dir)
	var console bytes.Buffer
	assert.NoError(t, SetupLog(c, "d", &console))
	c.Benchmarks = []string{"strnlen"}
	c.Sizes = []int{2}
	set, err := NewSet(c)
	assert.NoError(t, err)
	assert.NoError(t, set.Run(context.Background(), new(fakeRunner)))
	shutdown.Run()

	expect.HasSubstr(t, console.String(), "strnlen-stdlib done: 1 sizes")
	data, err := os.ReadFile(filepath.Join(dir, "logs", "rab-d.log"))
	assert.NoError(t, err)
	expect.HasSubstr(t, string(data), "INFO: strnlen-stdlib done")
	expect.HasSubstr(t, string(data), "DEBUG: strnlen-stdlib: size 2")
}

func TestConfig(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "sweep")
	defer cleanup()
	path := filepath.Join(dir, "sweep.toml")
	assert.NoError(t, os.WriteFile(path, []byte(`
benchmarks = ["memset", "strcmp"]
sizes = [8, 64]
target_time = 2.5
verify = true
`), 0666))

	// Parse into a different FlagSet sharing the values, as command
	// line frameworks that merge flag sets do.
	var f Flags
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	f.Register(fs)
	merged := flag.NewFlagSet("merged", flag.ContinueOnError)
	fs.VisitAll(func(fl *flag.Flag) { merged.Var(fl.Value, fl.Name, fl.Usage) })
	assert.NoError(t, merged.Parse([]string{"-config=" + path, "-sizes=1, 2", "-impls=stdlib,vector", "-parallelism=3", "-verify=false"}))
	c, err := f.Config("d")
	assert.NoError(t, err)
	expect.EQ(t, c.Benchmarks, []string{"memset", "strcmp"})
	expect.EQ(t, c.Sizes, []int{1, 2})
	expect.EQ(t, c.Impls, []string{"stdlib", "vector"})
	expect.EQ(t, c.TargetTime, 2.5)
	expect.False(t, c.Verify)
	expect.EQ(t, c.Parallelism, 3)
	expect.EQ(t, c.Warmup, 1)
	expect.EQ(t, c.ResultDir, "results-d")
	expect.EQ(t, c.LogPath("d"), filepath.Join("logs", "rab-d.log"))

	assert.NoError(t, os.WriteFile(path, []byte("sizez = [1]\n"), 0666))
	c = DefaultConfig("d")
	err = LoadConfig(path, &c)
	expect.True(t, errors.Is(errors.Invalid, err))
	expect.HasSubstr(t, err.Error(), "sizez")
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		mod  func(*Config)
		kind errors.Kind
	}{
		{func(c *Config) { c.Benchmarks = []string{"memmove"} }, errors.NotExist},
		{func(c *Config) { c.Impls = []string{"2048-1"} }, errors.NotExist},
		{func(c *Config) { c.Sizes = []int{4, 0} }, errors.Invalid},
		{func(c *Config) { c.Sizes = nil }, errors.Invalid},
		{func(c *Config) { c.TargetTime = 0 }, errors.Invalid},
		{func(c *Config) { c.Parallelism = 0 }, errors.Invalid},
		{func(c *Config) { c.Warmup = -1 }, errors.Invalid},
	} {
		c := DefaultConfig("d")
		tc.mod(&c)
		err := c.Validate()
		expect.True(t, errors.Is(tc.kind, err))
	}
	c := DefaultConfig("d")
	expect.NoError(t, c.Validate())
}

func TestExecRunner(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("no shell")
	}
	r := ExecRunner{Path: sh}
	s, err := r.Run(context.Background(), []string{"-c", "exit 0"})
	expect.NoError(t, err)
	expect.EQ(t, s.Instructions, uint64(0))

	s, err = r.Run(context.Background(), []string{"-c", "echo warming up; echo " + IcountPrefix + "1234"})
	expect.NoError(t, err)
	expect.EQ(t, s.Instructions, uint64(1234))

	_, err = r.Run(context.Background(), []string{"-c", "echo " + IcountPrefix + "lots"})
	expect.True(t, errors.Is(errors.Invalid, err))

	_, err = r.Run(context.Background(), []string{"-c", "echo ERROR: Verification failed; exit 1"})
	expect.HasSubstr(t, err.Error(), "ERROR: Verification failed")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = r.Run(ctx, []string{"-c", "exec sleep 10"})
	expect.True(t, errors.Is(errors.Timeout, err))
}

func TestResultsRoundTrip(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "results")
	defer cleanup()
	m, err := NewModel("strncpy", "512-2")
	assert.NoError(t, err)
	m.Results = []Result{
		{Benchmark: "strncpy", Iterations: 3000, Impl: "512-2", VLEN: 512, LMUL: 2, Size: 7, Time: 9.87654321, NsPerIter: 3292181.07, Icount: 9000, IcountPerIter: 3},
		{Benchmark: "strncpy", Iterations: 1, Impl: "512-2", VLEN: 512, LMUL: 2, Size: 78125, Time: 1e-7, NsPerIter: 100},
	}
	assert.NoError(t, WriteResults(dir, m))
	got, err := ReadResults(dir, "strncpy", "512-2")
	assert.NoError(t, err)
	if diff := deep.Equal(got, m.Results); diff != nil {
		t.Error(diff)
	}
	data, err := os.ReadFile(ResultPath(dir, "strncpy", "512-2"))
	assert.NoError(t, err)
	expect.True(t, strings.HasPrefix(string(data), "benchmark\titerations\timpl\tvlen\tlmul\tstdlib\tsize\ttime_s\tns_per_iter\ticount\ticount_per_iter\n"))
}

func TestProgress(t *testing.T) {
	t0 := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p := newProgress(5, 2, t0)
	expect.EQ(t, p.status(t0), "models queued 5, running 0, done 0; 0s elapsed, unknown time left")
	p.begin("memcpy-stdlib", t0)
	p.begin("memcpy-128-1", t0)
	expect.EQ(t, p.status(t0.Add(10*time.Second)), "models queued 3, running 2, done 0; 10s elapsed, >20s left")
	p.end("memcpy-stdlib", t0.Add(20*time.Second))
	// Mean 20s: the running model has none left, and the three queued
	// models need two rounds.
	expect.EQ(t, p.status(t0.Add(20*time.Second)), "models queued 3, running 1, done 1; 20s elapsed, ~40s left")
}
