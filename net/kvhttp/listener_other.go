// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package kvhttp

import "syscall"

// reuseAddrControl is a no-op on platforms where we don't hand-roll the
// socket option; Go's net package already sets SO_REUSEADDR for TCP
// listeners on darwin/bsd by default.
func reuseAddrControl(_, _ string, _ syscall.RawConn) error {
	return nil
}
