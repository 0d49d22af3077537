// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockRegistry_SameURISameLock(t *testing.T) {
	r := newLockRegistry()
	a := r.get("/x")
	b := r.get("/x")
	assert.Same(t, a, b)
}

func TestLockRegistry_DifferentURIDifferentLock(t *testing.T) {
	r := newLockRegistry()
	a := r.get("/x")
	b := r.get("/y")
	assert.NotSame(t, a, b)
}

func TestLockRegistry_ConcurrentFirstUseSingleLock(t *testing.T) {
	r := newLockRegistry()
	const n = 100
	locks := make([]*sync.RWMutex, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			locks[i] = r.get("/race")
		}()
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		assert.Same(t, locks[0], locks[i])
	}
	assert.Equal(t, 1, r.size())
}
