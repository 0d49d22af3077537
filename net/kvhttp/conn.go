// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"bytes"
	"io"
	"net"
)

// connection is an owned handle over one accepted socket, mutated only
// by the worker that popped it from the hand-off queue and destroyed
// (closed) before that worker loops back to pop the next one (§3).
type connection struct {
	conn    net.Conn
	req     *Request
	bodyPfx []byte // body bytes already read while looking for the header terminator
}

var headerDelim = []byte("\r\n\r\n")

// parse reads and validates the request line and headers per §4.E,
// leaving any over-read bytes available to body readers via bodyReader.
// It returns the response to send on a parse failure; on success it
// returns nil and populates c.req.
func (c *connection) parse() *Response {
	buf := make([]byte, MaxHeaderSize)
	filled, err := readUntil(c.conn, buf, headerDelim)
	if err != nil {
		// Client vanished or timed out before sending a full header
		// block; there is no one to send a response to, or the
		// response itself would time out. Treat as malformed.
		c.req = &Request{}
		return &ResponseBadRequest
	}

	idx := bytes.Index(filled, headerDelim)
	if idx < 0 {
		// Buffer filled (or EOF hit) without finding the terminator.
		c.req = &Request{}
		return &ResponseBadRequest
	}

	req, resp := parseRequest(filled[:idx+len(headerDelim)])
	c.req = req
	if resp != nil {
		return resp
	}
	c.bodyPfx = append([]byte(nil), filled[idx+len(headerDelim):]...)
	return nil
}

// bodyReader returns a reader over the request body: any bytes already
// consumed past the header terminator, followed by whatever remains
// unread on the socket.
func (c *connection) bodyReader() io.Reader {
	return io.MultiReader(bytes.NewReader(c.bodyPfx), c.conn)
}

// sendResponse renders and writes a fixed-body response (everything but
// GET's 200, which streams file content instead).
func (c *connection) sendResponse(r Response) error {
	return writeResponse(c.conn, r, nil, 0)
}
