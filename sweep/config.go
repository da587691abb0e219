// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package sweep measures benchmarks across data sizes and
// implementations. Each (benchmark, implementation) pair is a model; a
// model runs the strmem binary as a child process once per size, scaling
// the iteration count so that every measurement takes roughly a target
// CPU time, and subtracting a warm-up run to cancel setup costs. Results
// are written as TSV files and summarized in a Markdown report.
package sweep

import (
	"flag"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/grailbio/strmem/bench"
	"github.com/grailbio/strmem/errors"
	"github.com/grailbio/strmem/strmem"
)

// DefaultSizes are the sizes measured by default: powers of 2, 3, 5, 7
// and 11 up to 78125 bytes.
var DefaultSizes = []int{
	1, 2, 3, 4, 5, 7, 8, 9, 11, 16, 25, 27, 32, 49, 64, 81, 121, 125, 128,
	243, 256, 343, 512, 625, 729, 1024, 1331, 2048, 2401, 3125, 4096, 6561,
	8192, 14641, 15625, 16384, 16807, 19683, 32768, 59049, 65536, 78125,
}

// DefaultImpls are the implementations measured by default.
var DefaultImpls = []string{strmem.StdName, "128-1", "1024-8"}

// DatestampFormat formats the datestamp naming a sweep's files.
const DatestampFormat = "2006-01-02-15-04-05"

// Config configures a sweep. It can be read from a TOML file, with keys
// named by the toml tags.
type Config struct {
	Benchmarks []string `toml:"benchmarks"`
	Sizes      []int    `toml:"sizes"`
	Impls      []string `toml:"impls"`
	// Verify runs the benchmarks with verification, at a tenth of the
	// baseline iterations.
	Verify bool `toml:"verify"`
	// Warmup is the iteration count of the run subtracted from each
	// measurement.
	Warmup int `toml:"warmup"`
	// TargetTime is the CPU time, in seconds, aimed for by each
	// measurement.
	TargetTime float64 `toml:"target_time"`
	// Timeout bounds each child process, in seconds.
	Timeout     float64 `toml:"timeout"`
	Parallelism int     `toml:"parallelism"`
	ResultDir   string  `toml:"result_dir"`
	LogDir      string  `toml:"log_dir"`
	LogPrefix   string  `toml:"log_prefix"`
}

// DefaultConfig returns the default configuration for a sweep with the
// given datestamp.
func DefaultConfig(datestamp string) Config {
	return Config{
		Benchmarks:  bench.Names(),
		Sizes:       append([]int(nil), DefaultSizes...),
		Impls:       append([]string(nil), DefaultImpls...),
		Warmup:      1,
		TargetTime:  10,
		Timeout:     120,
		Parallelism: runtime.NumCPU(),
		ResultDir:   "results-" + datestamp,
		LogDir:      "logs",
		LogPrefix:   "rab",
	}
}

// LoadConfig reads the TOML file at path into c. Keys absent from the
// file keep their values in c; unknown keys are an error.
func LoadConfig(path string, c *Config) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.E(errors.Invalid, "config "+path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("config %s: unknown keys %v", path, undecoded))
	}
	return nil
}

// Validate checks that every benchmark and implementation exists and that
// the numeric settings are usable.
func (c *Config) Validate() error {
	if len(c.Benchmarks) == 0 || len(c.Impls) == 0 || len(c.Sizes) == 0 {
		return errors.E(errors.Invalid, "sweep needs at least one benchmark, implementation and size")
	}
	for _, name := range c.Benchmarks {
		if _, err := bench.Lookup(name); err != nil {
			return err
		}
	}
	for _, name := range c.Impls {
		if _, err := strmem.Lookup(name); err != nil {
			return err
		}
	}
	for _, size := range c.Sizes {
		if size <= 0 {
			return errors.E(errors.Invalid, fmt.Sprintf("size %d is not positive", size))
		}
	}
	switch {
	case c.Warmup < 0:
		return errors.E(errors.Invalid, "negative warmup")
	case c.TargetTime <= 0:
		return errors.E(errors.Invalid, "target time must be positive")
	case c.Timeout <= 0:
		return errors.E(errors.Invalid, "timeout must be positive")
	case c.Parallelism < 1:
		return errors.E(errors.Invalid, "parallelism must be at least 1")
	}
	return nil
}

func (c *Config) timeout() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}

func (c *Config) target() time.Duration {
	return time.Duration(c.TargetTime * float64(time.Second))
}

// LogPath returns the path of the sweep's log file.
func (c *Config) LogPath(datestamp string) string {
	return filepath.Join(c.LogDir, c.LogPrefix+"-"+datestamp+".log")
}

// Flags holds command line overrides of a Config. Only the flags given
// on the command line override the configuration; the flag values record
// whether they were set, so the overrides survive parsing into a FlagSet
// other than the one they were registered in.
type Flags struct {
	config                    string
	benchmarks, sizes, impls  string
	verify                    bool
	warmup, parallelism       int
	targetTime, timeout       float64
	resultDir, logDir, prefix string
	set                       map[string]bool
}

// trackedValue is a flag.Value that records in set that it was given.
type trackedValue struct {
	flag.Value
	name string
	set  map[string]bool
}

func (v *trackedValue) String() string {
	if v == nil || v.Value == nil {
		return ""
	}
	return v.Value.String()
}

func (v *trackedValue) Set(s string) error {
	if err := v.Value.Set(s); err != nil {
		return err
	}
	v.set[v.name] = true
	return nil
}

// trackedBool is a trackedValue that may be given without a value.
type trackedBool struct{ trackedValue }

func (*trackedBool) IsBoolFlag() bool { return true }

// Register registers the sweep flags in fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	f.set = make(map[string]bool)
	fs.StringVar(&f.config, "config", "", "TOML file with sweep settings; flags override it")
	fs.StringVar(&f.benchmarks, "benchmarks", "", "comma-separated benchmarks (default all)")
	fs.StringVar(&f.sizes, "sizes", "", "comma-separated data sizes")
	fs.StringVar(&f.impls, "impls", "", "comma-separated implementations (default "+strings.Join(DefaultImpls, ",")+")")
	fs.BoolVar(&f.verify, "verify", false, "verify every run")
	fs.IntVar(&f.warmup, "warmup", 1, "iterations of the run subtracted from each measurement")
	fs.IntVar(&f.parallelism, "parallelism", runtime.NumCPU(), "number of models run concurrently")
	fs.Float64Var(&f.targetTime, "target-time", 10, "target CPU seconds per measurement")
	fs.Float64Var(&f.timeout, "timeout", 120, "timeout in seconds of each benchmark process")
	fs.StringVar(&f.resultDir, "result-dir", "", "directory for results (default results-<datestamp>)")
	fs.StringVar(&f.logDir, "log-dir", "logs", "directory for log files")
	fs.StringVar(&f.prefix, "log-prefix", "rab", "prefix of the log file name")
	for _, name := range []string{"benchmarks", "sizes", "impls", "verify", "warmup", "parallelism",
		"target-time", "timeout", "result-dir", "log-dir", "log-prefix"} {
		fl := fs.Lookup(name)
		v := trackedValue{fl.Value, name, f.set}
		if name == "verify" {
			fl.Value = &trackedBool{v}
		} else {
			fl.Value = &v
		}
	}
}

// Config returns the default configuration, overridden by the -config
// file if any, and then by the flags given on the command line.
func (f *Flags) Config(datestamp string) (Config, error) {
	c := DefaultConfig(datestamp)
	if f.config != "" {
		if err := LoadConfig(f.config, &c); err != nil {
			return c, err
		}
	}
	if f.set["sizes"] {
		sizes, err := parseSizes(f.sizes)
		if err != nil {
			return c, err
		}
		c.Sizes = sizes
	}
	if f.set["benchmarks"] {
		c.Benchmarks = splitList(f.benchmarks)
	}
	if f.set["impls"] {
		c.Impls = splitList(f.impls)
	}
	if f.set["verify"] {
		c.Verify = f.verify
	}
	if f.set["warmup"] {
		c.Warmup = f.warmup
	}
	if f.set["parallelism"] {
		c.Parallelism = f.parallelism
	}
	if f.set["target-time"] {
		c.TargetTime = f.targetTime
	}
	if f.set["timeout"] {
		c.Timeout = f.timeout
	}
	if f.set["result-dir"] {
		c.ResultDir = f.resultDir
	}
	if f.set["log-dir"] {
		c.LogDir = f.logDir
	}
	if f.set["log-prefix"] {
		c.LogPrefix = f.prefix
	}
	return c, c.Validate()
}

func splitList(s string) []string {
	var list []string
	for _, elem := range strings.Split(s, ",") {
		if elem = strings.TrimSpace(elem); elem != "" {
			list = append(list, elem)
		}
	}
	return list
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, elem := range splitList(s) {
		size, err := strconv.Atoi(elem)
		if err != nil {
			return nil, errors.E(errors.Invalid, "bad size "+elem, err)
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}
