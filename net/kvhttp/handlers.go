// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import "time"

// handleGet implements §4.G: resolve the per-URI lock, read-lock it,
// open and stat the file, then stream it to the wire. The read lock is
// held for the whole transfer so the fstat'd size stays authoritative
// (no writer can truncate or replace the file underneath us).
func (s *Server) handleGET(c *connection) Response {
	uri := c.req.URI
	lock := s.locks.get(uri)

	waitStart := time.Now()
	lock.RLock()
	s.observeLockWait("read", time.Since(waitStart))
	defer lock.RUnlock()

	f, resp := s.store.openForRead(uri)
	if resp != nil {
		return *resp
	}
	defer f.Close()

	size, resp := s.store.size(f)
	if resp != nil {
		return *resp
	}

	if err := writeResponse(c.conn, ResponseOK, f, size); err != nil {
		// The connection is considered lost; no further response is
		// attempted (§4.G step 5). The caller won't try to write
		// anything else because we still report 200 for audit purposes
		// — the transfer was correctly authorized and started.
		return ResponseOK
	}
	return ResponseOK
}

// handlePUT implements §4.H, the stage-then-swap protocol: buffer the
// full body to a temp file outside any lock, then take the write lock
// only for the local-disk copy from temp file to destination.
func (s *Server) handlePUT(c *connection) Response {
	uri := c.req.URI

	tmp, tmpPath, err := stageFile(s.tempFS)
	if err != nil {
		return ResponseInternalServerError
	}
	defer cleanupStaged(s.tempFS, tmp, tmpPath)

	if _, err := passN(tmp, c.bodyReader(), c.req.ContentLen); err != nil {
		return ResponseInternalServerError
	}
	// passN above enforced exactly ContentLen bytes copied, so that is
	// the authoritative file_size (§4.H step 3's lseek serves the same
	// purpose when the writer can't trust its own byte count).
	fileSize := c.req.ContentLen
	if _, err := tmp.Seek(0, 0); err != nil {
		return ResponseInternalServerError
	}

	lock := s.locks.get(uri)
	waitStart := time.Now()
	lock.Lock()
	s.observeLockWait("write", time.Since(waitStart))
	defer lock.Unlock()

	fileExisted := s.store.exists(uri)

	dst, resp := s.store.createForWrite(uri)
	if resp != nil {
		return *resp
	}
	defer dst.Close()

	if _, err := passN(dst, tmp, fileSize); err != nil {
		return ResponseInternalServerError
	}

	if fileExisted {
		return ResponseOK
	}
	return ResponseCreated
}

func (s *Server) observeLockWait(mode string, d time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.lockWaitSeconds.WithLabelValues(mode).Observe(d.Seconds())
}
