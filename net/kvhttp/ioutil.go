// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"bytes"
	"errors"
	"io"
	"net"
)

// readUntil fills buf by repeated reads from r until delim has been seen
// in what has been read so far, len(buf) bytes have accumulated, or EOF
// is reached. It returns the slice of buf actually filled.
//
// Go's net.Conn.Read already retries internally on EINTR, so unlike the
// C original this loop does no retrying of its own: io.EOF ends the loop
// with a nil error, and any other read error (including a deadline
// timeout) ends it and is returned alongside the bytes read so far.
func readUntil(r io.Reader, buf []byte, delim []byte) ([]byte, error) {
	n := 0
	for n < len(buf) {
		if idx := bytes.Index(buf[:n], delim); idx >= 0 {
			return buf[:n], nil
		}
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			if err == io.EOF {
				return buf[:n], nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return buf[:n], err
			}
			return buf[:n], err
		}
	}
	return buf[:n], nil
}

// writeAll writes all of p to w, retrying short writes. It mirrors
// write_all from the original C server; io.Writer in the standard
// library already guarantees this for net.Conn, but handlers write
// through this helper so the contract is explicit and testable against
// arbitrary io.Writers.
func writeAll(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

// passN copies exactly n bytes from src to dst using a fixed-size
// staging buffer, returning the number of bytes copied. It fails if
// fewer than n bytes could be read from src (the caller's declared
// Content-Length or file size was a lie) or if the write side fails.
func passN(dst io.Writer, src io.Reader, n int64) (int64, error) {
	buf := make([]byte, passBufSize)
	var copied int64
	for copied < n {
		chunk := int64(len(buf))
		if remaining := n - copied; remaining < chunk {
			chunk = remaining
		}
		r, err := io.ReadFull(src, buf[:chunk])
		copied += int64(r)
		if err != nil {
			return copied, err
		}
		if err := writeAll(dst, buf[:r]); err != nil {
			return copied, err
		}
	}
	return copied, nil
}
