// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"errors"
	"io/fs"
	"os"
	"syscall"

	"github.com/spf13/afero"
)

// store wraps the afero.Fs backing GET/PUT, translating its errors into
// the response table of §3. Production servers use afero.NewOsFs()
// rooted at the working directory (§6); tests use afero.NewMemMapFs()
// so the GET/PUT contract can be exercised without touching disk.
type store struct {
	fs afero.Fs
}

func newStore(fs afero.Fs) *store {
	return &store{fs: fs}
}

// openForRead opens uri for the GET handler, mapping filesystem errors
// onto the fixed response set per §4.G step 3.
func (s *store) openForRead(uri string) (afero.File, *Response) {
	f, err := s.fs.Open(uri)
	if err == nil {
		return f, nil
	}
	switch {
	case errors.Is(err, fs.ErrPermission):
		return nil, &ResponseForbidden
	case errors.Is(err, fs.ErrNotExist):
		return nil, &ResponseNotFound
	default:
		return nil, &ResponseInternalServerError
	}
}

// size stats f and returns its length, or a 500 on failure (§4.G step 4).
func (s *store) size(f afero.File) (int64, *Response) {
	info, err := f.Stat()
	if err != nil {
		return 0, &ResponseInternalServerError
	}
	return info.Size(), nil
}

// exists reports whether uri currently has content, used by PUT to
// decide between 200 and 201 (§4.H step 5). Must only be called while
// holding the write lock for uri.
func (s *store) exists(uri string) bool {
	_, err := s.fs.Stat(uri)
	return err == nil
}

// createForWrite opens uri for the PUT handler with create+truncate
// semantics, mapping filesystem errors per §4.H step 6.
func (s *store) createForWrite(uri string) (afero.File, *Response) {
	f, err := s.fs.OpenFile(uri, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err == nil {
		return f, nil
	}
	switch {
	case errors.Is(err, fs.ErrPermission), errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.EISDIR):
		return nil, &ResponseForbidden
	default:
		return nil, &ResponseInternalServerError
	}
}
