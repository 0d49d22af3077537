// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// stageFile creates a uniquely named temporary file, mode 0600, under
// os.TempDir with the "httpserver.XXXXXX"-style template from §6, using
// a uuid suffix rather than mkstemp's XXXXXX since Go has no mkstemp
// equivalent in the standard library that also fixes the mode up front.
// fs is the Server's tempFS — independent of the key-value store's
// afero.Fs, since staging is never part of the URI namespace.
func stageFile(fs afero.Fs) (afero.File, string, error) {
	name := fmt.Sprintf("httpserver.%s", uuid.NewString())
	path := os.TempDir() + string(os.PathSeparator) + name
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_EXCL, 0o600)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// cleanupStaged closes and unlinks a staged temp file, ignoring errors
// from an already-closed descriptor the way the C original's unlink
// after close does.
func cleanupStaged(fs afero.Fs, f afero.File, path string) {
	if f != nil {
		f.Close()
	}
	if path != "" {
		fs.Remove(path)
	}
}
