// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package shutdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunOrder(t *testing.T) {
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		Register(func() { order = append(order, i) })
	}
	Run()
	assert.Equal(t, []int{2, 1, 0}, order)
	Run()
	assert.Equal(t, []int{2, 1, 0}, order)
}

func TestRunPanic(t *testing.T) {
	var ran bool
	Register(func() { ran = true })
	Register(func() { panic("close failed") })
	Run()
	assert.True(t, ran)
}
