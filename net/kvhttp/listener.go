// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"context"
	"fmt"
	"net"
	"time"
)

// listen binds INADDR_ANY:port, enabling SO_REUSEADDR (platform-specific,
// see listener_linux.go), and returns the resulting TCP listener. The
// backlog is left to the runtime default, which on every platform Go
// supports is already sized generously for a handful of worker threads.
func listen(port int) (*net.TCPListener, error) {
	lc := net.ListenConfig{Control: reuseAddrControl}
	ln, err := lc.Listen(context.Background(), "tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}
	tl, ok := ln.(*net.TCPListener)
	if !ok {
		ln.Close()
		return nil, fmt.Errorf("kvhttp: unexpected listener type %T", ln)
	}
	return tl, nil
}

// acceptConn accepts one connection and applies the 5-second receive
// deadline required by §4.B, so a malformed or silent client can't pin a
// worker indefinitely.
func acceptConn(ln *net.TCPListener) (net.Conn, error) {
	conn, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	if err := conn.SetReadDeadline(time.Now().Add(AcceptTimeout)); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
