// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnQueue_FIFO(t *testing.T) {
	q := newConnQueue(4)
	ctx := context.Background()
	c1, c2 := &net.TCPConn{}, &net.TCPConn{}

	require.NoError(t, q.push(ctx, c1))
	require.NoError(t, q.push(ctx, c2))
	assert.Equal(t, 2, q.depth())

	got1, err := q.pop(ctx)
	require.NoError(t, err)
	assert.Same(t, c1, got1)

	got2, err := q.pop(ctx)
	require.NoError(t, err)
	assert.Same(t, c2, got2)

	assert.Equal(t, 0, q.depth())
}

func TestConnQueue_PushBlocksWhenFull(t *testing.T) {
	q := newConnQueue(1)
	ctx := context.Background()
	require.NoError(t, q.push(ctx, &net.TCPConn{}))

	pushCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	err := q.push(pushCtx, &net.TCPConn{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConnQueue_PopBlocksWhenEmpty(t *testing.T) {
	q := newConnQueue(1)
	popCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := q.pop(popCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
