// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"context"
	"net"
	"sync"

	"golang.org/x/sync/semaphore"
)

// connQueue is a fixed-capacity blocking FIFO of accepted connections,
// handing ownership of each net.Conn from the accept goroutine to
// whichever worker pops it next. It is the classic bounded-buffer
// pattern: one semaphore tracks empty slots, one tracks filled slots,
// and a mutex protects the ring storage between them (§4.C).
//
// push blocks while the queue is full; pop blocks while it is empty.
// There is no "closed" state: a blocked push or pop returns only when it
// succeeds or when its ctx is done, in which case it returns ctx's error.
// Serve and its workers rely on that to stop on shutdown.
type connQueue struct {
	empty *semaphore.Weighted
	fill  *semaphore.Weighted

	mu   sync.Mutex
	ring []net.Conn
	head int
	tail int
	n    int
}

func newConnQueue(capacity int) *connQueue {
	q := &connQueue{
		empty: semaphore.NewWeighted(int64(capacity)),
		fill:  semaphore.NewWeighted(int64(capacity)),
		ring:  make([]net.Conn, capacity),
	}
	// fill starts at zero filled slots; a fresh Weighted semaphore starts
	// fully available, so drain it before anyone can pop from an empty
	// queue.
	q.fill.Acquire(context.Background(), int64(capacity))
	return q
}

// push enqueues c, blocking until a slot is free or ctx is done.
func (q *connQueue) push(ctx context.Context, c net.Conn) error {
	if err := q.empty.Acquire(ctx, 1); err != nil {
		return err
	}
	q.mu.Lock()
	q.ring[q.tail] = c
	q.tail = (q.tail + 1) % len(q.ring)
	q.n++
	q.mu.Unlock()
	q.fill.Release(1)
	return nil
}

// pop dequeues the oldest connection, blocking until one is available or
// ctx is done.
func (q *connQueue) pop(ctx context.Context) (net.Conn, error) {
	if err := q.fill.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	q.mu.Lock()
	c := q.ring[q.head]
	q.ring[q.head] = nil
	q.head = (q.head + 1) % len(q.ring)
	q.n--
	q.mu.Unlock()
	q.empty.Release(1)
	return c, nil
}

// depth reports the current occupancy, for the queue-depth gauge.
func (q *connQueue) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.n
}
