// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"

	"github.com/grailbio/strmem/errors"
	"github.com/grailbio/strmem/strmem"
)

// VmemcpyWarmup is the number of unmeasured copies made by Vmemcpy.
const VmemcpyWarmup = 10

// Vmemcpy copies a single random block of size bytes iters times after
// VmemcpyWarmup warm-up copies. If check is not nil, the destination is
// compared with the source, and a line "length: <size>, result:
// PASS|FAIL" is written to check; a failure is followed by the SRC and
// DST bytes in decimal. Vmemcpy reports whether the copy matched; it is
// always true without check.
func Vmemcpy(impl strmem.Impl, size, iters int, seed int64, check io.Writer) (bool, error) {
	if size <= 0 {
		return false, errors.E(errors.Invalid, "Data length <= 0")
	}
	rnd := rand.New(rand.NewSource(seed))
	src := make([]byte, size)
	dst := make([]byte, size)
	MemInitRandom(rnd, src)
	for i := 0; i < VmemcpyWarmup; i++ {
		impl.Memcpy(dst, src, size)
	}
	for i := 0; i < iters; i++ {
		impl.Memcpy(dst, src, size)
	}
	if check == nil {
		return true, nil
	}
	mismatches := 0
	for i := range src {
		if dst[i] != src[i] {
			mismatches++
		}
	}
	result := "PASS"
	if mismatches > 0 {
		result = "FAIL"
	}
	w := bufio.NewWriter(check)
	fmt.Fprintf(w, "length: %d, result: %s\n", size, result)
	if mismatches > 0 {
		writeBytes(w, "SRC:", src)
		writeBytes(w, "DST:", dst)
	}
	return mismatches == 0, w.Flush()
}

func writeBytes(w *bufio.Writer, label string, p []byte) {
	w.WriteString(label)
	for _, b := range p {
		fmt.Fprintf(w, " %d", b)
	}
	w.WriteByte('\n')
}
