// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUntil_FindsDelimiter(t *testing.T) {
	r := strings.NewReader("GET /a HTTP/1.1\r\n\r\ntrailing body bytes")
	buf := make([]byte, MaxHeaderSize)
	got, err := readUntil(r, buf, []byte("\r\n\r\n"))
	require.NoError(t, err)
	idx := bytes.Index(got, []byte("\r\n\r\n"))
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "GET /a HTTP/1.1\r\n\r\n", string(got[:idx+4]))
	assert.Equal(t, "trailing body bytes", string(got[idx+4:]))
}

func TestPassN_CopiesExactBytes(t *testing.T) {
	src := strings.NewReader("0123456789abcdef")
	var dst bytes.Buffer
	n, err := passN(&dst, src, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 10, n)
	assert.Equal(t, "0123456789", dst.String())
}

func TestPassN_ShortReadErrors(t *testing.T) {
	src := strings.NewReader("short")
	var dst bytes.Buffer
	_, err := passN(&dst, src, 100)
	assert.Error(t, err)
}
