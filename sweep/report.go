// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package sweep

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/grailbio/strmem/errors"
	"github.com/grailbio/strmem/log"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// HostInfo describes the machine a sweep ran on.
type HostInfo struct {
	CPU    string
	Cores  int
	Memory uint64
}

func (h HostInfo) String() string {
	cpuName := h.CPU
	if cpuName == "" {
		cpuName = "unknown CPU"
	}
	s := fmt.Sprintf("%s, %d cores", cpuName, h.Cores)
	if h.Memory > 0 {
		s += ", " + humanize.IBytes(h.Memory) + " memory"
	}
	return s
}

// GetHostInfo collects host information. Fields that cannot be read are
// left zero.
func GetHostInfo(ctx context.Context) HostInfo {
	var h HostInfo
	if info, err := cpu.InfoWithContext(ctx); err != nil {
		log.Debug.Printf("cpu info: %v", err)
	} else if len(info) > 0 {
		h.CPU = strings.TrimSpace(info[0].ModelName)
	}
	if n, err := cpu.CountsWithContext(ctx, true); err != nil {
		log.Debug.Printf("cpu count: %v", err)
	} else {
		h.Cores = n
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		log.Debug.Printf("virtual memory: %v", err)
	} else {
		h.Memory = vm.Total
	}
	return h
}

// Report summarizes the results of a sweep.
type Report struct {
	Datestamp  string
	User       string
	RunID      string
	Host       HostInfo
	Benchmarks []string
	Impls      []string
	// Failed holds the benchmarks with at least one missing result file.
	Failed map[string]bool

	results map[string]map[string][]Result
}

// NewReport reads the result files of every model of c from
// c.ResultDir.
func NewReport(ctx context.Context, c Config, datestamp, runID string) *Report {
	r := &Report{
		Datestamp:  datestamp,
		User:       currentUser(),
		RunID:      runID,
		Host:       GetHostInfo(ctx),
		Benchmarks: c.Benchmarks,
		Impls:      c.Impls,
		Failed:     map[string]bool{},
		results:    map[string]map[string][]Result{},
	}
	for _, benchmark := range c.Benchmarks {
		r.results[benchmark] = map[string][]Result{}
		for _, impl := range c.Impls {
			results, err := ReadResults(c.ResultDir, benchmark, impl)
			if err != nil {
				log.Error.Printf("%s-%s: %v", benchmark, impl, err)
				r.Failed[benchmark] = true
				continue
			}
			r.results[benchmark][impl] = results
		}
	}
	return r
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

// WriteMarkdown writes the report as Markdown: the run metadata, the
// benchmark and implementation lists, and per benchmark a table of
// nanoseconds per iteration by size and implementation, followed by one
// of instructions per iteration for the implementations that count them.
func (r *Report) WriteMarkdown(w io.Writer) error {
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "# strmem benchmark report\n\n")
	fmt.Fprintf(b, "- Date: %s\n", r.Datestamp)
	fmt.Fprintf(b, "- User: %s\n", r.User)
	fmt.Fprintf(b, "- Run ID: %s\n", r.RunID)
	fmt.Fprintf(b, "- Host: %s\n", r.Host)

	fmt.Fprintf(b, "\n## Benchmarks\n\n")
	for _, benchmark := range r.Benchmarks {
		if r.Failed[benchmark] {
			fmt.Fprintf(b, "- %s **(failed)**\n", benchmark)
		} else {
			fmt.Fprintf(b, "- %s\n", benchmark)
		}
	}
	fmt.Fprintf(b, "\n## Implementations\n\n")
	for _, impl := range r.Impls {
		fmt.Fprintf(b, "- %s\n", impl)
	}

	for _, benchmark := range r.Benchmarks {
		fmt.Fprintf(b, "\n## %s\n\nNanoseconds per iteration.\n\n", benchmark)
		byImpl := r.results[benchmark]
		times := map[int]map[string]float64{}
		insns := map[int]map[string]float64{}
		for impl, results := range byImpl {
			for _, res := range results {
				if times[res.Size] == nil {
					times[res.Size] = map[string]float64{}
					insns[res.Size] = map[string]float64{}
				}
				times[res.Size][impl] = res.NsPerIter
				if res.Icount > 0 {
					insns[res.Size][impl] = res.IcountPerIter
				}
			}
		}
		if len(times) == 0 {
			fmt.Fprintf(b, "No results.\n")
			continue
		}
		writeTable(b, r.Impls, times)
		var counted []string
		for _, impl := range r.Impls {
			for _, byImpl := range insns {
				if _, ok := byImpl[impl]; ok {
					counted = append(counted, impl)
					break
				}
			}
		}
		if len(counted) > 0 {
			fmt.Fprintf(b, "\nVector instructions per iteration.\n\n")
			writeTable(b, counted, insns)
		}
	}
	return b.Flush()
}

// writeTable writes a Markdown table of values by size and
// implementation, with a dash for missing values.
func writeTable(b *bufio.Writer, impls []string, values map[int]map[string]float64) {
	sizes := make([]int, 0, len(values))
	for size := range values {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	fmt.Fprintf(b, "| Size | %s |\n", strings.Join(impls, " | "))
	fmt.Fprintf(b, "|---:|%s\n", strings.Repeat("---:|", len(impls)))
	for _, size := range sizes {
		fmt.Fprintf(b, "| %s |", humanize.IBytes(uint64(size)))
		for _, impl := range impls {
			if v, ok := values[size][impl]; ok {
				fmt.Fprintf(b, " %.2f |", v)
			} else {
				fmt.Fprintf(b, " - |")
			}
		}
		fmt.Fprintf(b, "\n")
	}
}

// ReportPath returns the path of the report of the sweep with the given
// datestamp.
func ReportPath(c Config, datestamp string) string {
	return filepath.Join(c.ResultDir, "report-"+datestamp+".md")
}

// WriteReport builds the report of c's results and writes it to
// ReportPath. It returns the report.
func WriteReport(ctx context.Context, c Config, datestamp, runID string) (_ *Report, err error) {
	r := NewReport(ctx, c, datestamp, runID)
	path := ReportPath(c, datestamp)
	if err := os.MkdirAll(c.ResultDir, 0777); err != nil {
		return nil, errors.E("writing report", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.E("writing report", err)
	}
	defer errors.CleanUp(f.Close, &err)
	if err := r.WriteMarkdown(f); err != nil {
		return nil, errors.E("writing "+path, err)
	}
	log.Printf("report written to %s", path)
	return r, nil
}

// Summary prints a PASS or FAIL line per model.
func Summary(w io.Writer, models []*Model) {
	pass := color.New(color.FgGreen, color.Bold).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()
	for _, m := range models {
		if m.Err != nil {
			fmt.Fprintf(w, "%s %s: %v\n", fail("FAIL"), m.Name(), m.Err)
		} else {
			fmt.Fprintf(w, "%s %s\n", pass("PASS"), m.Name())
		}
	}
}
