// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import "sync"

// lockRegistry is a process-wide mapping from URI string to a stable
// reader/writer lock for that URI. The mapping is monotonic: entries are
// added lazily on first use and never removed during a run, so a handle
// returned by get outlives every caller that might still reference it.
//
// The original C server backs this with a chained hash table keyed by a
// hand-rolled polynomial hash (h = 31*h + c) guarded by one mutex; a Go
// map already is that hash table; get keeps the same "one mutex guards
// lookup-or-create, not the per-URI lock itself" shape so long request
// processing happens outside the registry's critical section (§4.D).
type lockRegistry struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func newLockRegistry() *lockRegistry {
	return &lockRegistry{locks: make(map[string]*sync.RWMutex)}
}

// get returns the lock for uri, creating it if this is the first
// reference. Two concurrent first-uses for the same uri never create
// two distinct locks.
func (r *lockRegistry) get(uri string) *sync.RWMutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[uri]
	if !ok {
		l = &sync.RWMutex{}
		r.locks[uri] = l
	}
	return l
}

// size reports how many distinct URIs have been locked at least once.
// Used only by tests, never by the request path.
func (r *lockRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}
