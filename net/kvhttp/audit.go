// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"fmt"
	"io"
	"sync"
)

// auditLog serializes one CSV line per completed request to w, flushing
// after each line. It is a distinct stream from the operational zap
// logger: its format is a wire contract (§4.I, §6), not a diagnostic
// convenience, so it gets its own mutex and no structured-logging
// dependency.
type auditLog struct {
	mu sync.Mutex
	w  io.Writer
}

func newAuditLog(w io.Writer) *auditLog {
	return &auditLog{w: w}
}

// record emits "METHOD,URI,STATUS,REQUEST_ID\n". method is the raw
// token the parser saw (possibly empty, if nothing was parsed at all);
// requestID is "0" when the client sent no Request-Id header.
func (a *auditLog) record(method, uri string, status int, requestID string) {
	if requestID == "" {
		requestID = "0"
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.w, "%s,%s,%d,%s\n", method, uri, status, requestID)
	if f, ok := a.w.(interface{ Sync() error }); ok {
		f.Sync()
	} else if f, ok := a.w.(interface{ Flush() error }); ok {
		f.Flush()
	}
}
