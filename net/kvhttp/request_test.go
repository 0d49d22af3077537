// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest_GET(t *testing.T) {
	raw := "GET /a HTTP/1.1\r\nRequest-Id: 42\r\n\r\n"
	req, resp := parseRequest([]byte(raw))
	require.Nil(t, resp)
	assert.Equal(t, MethodGET, req.Method)
	assert.Equal(t, "/a", req.URI)
	id, ok := req.Header("Request-Id")
	assert.True(t, ok)
	assert.Equal(t, "42", id)
}

func TestParseRequest_PUTRequiresContentLength(t *testing.T) {
	raw := "PUT /a HTTP/1.1\r\n\r\n"
	req, resp := parseRequest([]byte(raw))
	require.NotNil(t, resp)
	assert.Equal(t, ResponseBadRequest, *resp)
	assert.Equal(t, "PUT", req.MethodToken)
}

func TestParseRequest_PUTContentLength(t *testing.T) {
	raw := "PUT /a HTTP/1.1\r\nContent-Length: 5\r\n\r\n"
	req, resp := parseRequest([]byte(raw))
	require.Nil(t, resp)
	assert.Equal(t, int64(5), req.ContentLen)
}

func TestParseRequest_BadVersion(t *testing.T) {
	raw := "GET /a HTTP/1.0\r\n\r\n"
	req, resp := parseRequest([]byte(raw))
	require.NotNil(t, resp)
	assert.Equal(t, ResponseVersionNotSupported, *resp)
	assert.Equal(t, "GET", req.MethodToken)
}

func TestParseRequest_UnsupportedMethod(t *testing.T) {
	raw := "DELETE /a HTTP/1.1\r\n\r\n"
	req, resp := parseRequest([]byte(raw))
	require.Nil(t, resp)
	assert.Equal(t, MethodUnsupported, req.Method)
	assert.Equal(t, "DELETE", req.MethodToken)
}

func TestParseRequest_URILengthBoundary(t *testing.T) {
	uri63 := "/" + strings.Repeat("a", 63)
	raw := "GET " + uri63 + " HTTP/1.1\r\n\r\n"
	_, resp := parseRequest([]byte(raw))
	assert.Nil(t, resp)

	uri64 := "/" + strings.Repeat("a", 64)
	raw2 := "GET " + uri64 + " HTTP/1.1\r\n\r\n"
	_, resp2 := parseRequest([]byte(raw2))
	require.NotNil(t, resp2)
	assert.Equal(t, ResponseBadRequest, *resp2)
}

func TestParseRequest_MalformedHeader(t *testing.T) {
	raw := "GET /a HTTP/1.1\r\nbad header line\r\n\r\n"
	_, resp := parseRequest([]byte(raw))
	require.NotNil(t, resp)
	assert.Equal(t, ResponseBadRequest, *resp)
}

func TestParseRequest_MalformedRequestLine(t *testing.T) {
	_, resp := parseRequest([]byte("not a request\r\n\r\n"))
	require.NotNil(t, resp)
	assert.Equal(t, ResponseBadRequest, *resp)
}
