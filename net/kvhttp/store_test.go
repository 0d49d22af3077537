// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_OpenForRead_NotFound(t *testing.T) {
	s := newStore(afero.NewMemMapFs())
	_, resp := s.openForRead("/missing")
	require.NotNil(t, resp)
	assert.Equal(t, ResponseNotFound, *resp)
}

func TestStore_CreateThenExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newStore(fs)
	assert.False(t, s.exists("/a"))

	f, resp := s.createForWrite("/a")
	require.Nil(t, resp)
	f.Close()

	assert.True(t, s.exists("/a"))
}

func TestStore_SizeMatchesWrittenContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newStore(fs)
	f, resp := s.createForWrite("/a")
	require.Nil(t, resp)
	_, err := f.Write([]byte("hello"))
	require.NoError(t, err)
	f.Close()

	f2, resp2 := s.openForRead("/a")
	require.Nil(t, resp2)
	defer f2.Close()
	n, resp3 := s.size(f2)
	require.Nil(t, resp3)
	assert.EqualValues(t, 5, n)
}
