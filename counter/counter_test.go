// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rush-ecs/rush/counter"
)

func TestCounter(t *testing.T) {
	var c counter.Counter
	assert.True(t, c.IsZero(), "not zero at start")

	assert.Equal(t, uint64(1), c.Increment())
	assert.Equal(t, uint64(2), c.Increment())
	assert.Equal(t, uint64(1), c.Decrement())
	assert.False(t, c.IsZero())
	assert.Equal(t, uint64(0), c.Decrement())
	assert.True(t, c.IsZero())
}

func TestConcurrent(t *testing.T) {
	var c counter.Counter
	var wg sync.WaitGroup
	for i := 0; i < 50; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j += 1 {
				c.Increment()
				c.Decrement()
				c.Increment()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(5000), c.Uint64())
}
