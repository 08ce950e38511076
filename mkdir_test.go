// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vrootfs_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aibor/vrootfs/fserr"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestFS_MkdirAll(t *testing.T) {
	primary := t.TempDir()
	fallback := t.TempDir()
	backend := &recordingFs{Fs: afero.NewOsFs()}

	vfs := newFS(t, backend, map[string]any{
		"data": []string{primary, fallback},
	})

	err := vfs.MkdirAll(t.Context(), "data/a/b/c")
	require.NoError(t, err)

	expected := []string{
		filepath.Join(primary, "a"),
		filepath.Join(primary, "a", "b"),
		filepath.Join(primary, "a", "b", "c"),
	}
	assert.Equal(t, expected, backend.mkdirs, "created in order")
	assert.DirExists(t, expected[2])
	assert.NoDirExists(t, filepath.Join(fallback, "a"), "fallback untouched")

	t.Run("existing", func(t *testing.T) {
		backend.mkdirs = nil

		err := vfs.MkdirAll(t.Context(), "data/a/b/c")
		require.NoError(t, err)
		assert.Empty(t, backend.mkdirs)
	})

	t.Run("partially existing", func(t *testing.T) {
		backend.mkdirs = nil

		err := vfs.MkdirAll(t.Context(), "/data/a/./x/../b/d/")
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(primary, "a", "b", "d")}, backend.mkdirs)
	})

	t.Run("root only", func(t *testing.T) {
		backend.mkdirs = nil

		err := vfs.MkdirAll(t.Context(), "data")
		require.NoError(t, err)
		assert.Empty(t, backend.mkdirs)
	})
}

func TestFS_MkdirAll_Errors(t *testing.T) {
	dir := t.TempDir()
	backend := &recordingFs{Fs: afero.NewOsFs()}

	vfs := newFS(t, backend, map[string]any{"data": dir})

	canceled, cancel := context.WithCancel(t.Context())
	cancel()

	tests := []struct {
		name        string
		ctx         context.Context //nolint:containedctx
		virtualPath string
		expectedErr error
	}{
		{
			name:        "unknown root",
			ctx:         t.Context(),
			virtualPath: "nope/a",
			expectedErr: fserr.UnknownRoot,
		},
		{
			name:        "out of bounds",
			ctx:         t.Context(),
			virtualPath: "data/../../a",
			expectedErr: fserr.OutOfBounds,
		},
		{
			name:        "backslash",
			ctx:         t.Context(),
			virtualPath: `data\a`,
			expectedErr: fserr.PosixExpected,
		},
		{
			name:        "canceled",
			ctx:         canceled,
			virtualPath: "data/a",
			expectedErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend.mkdirs = nil

			err := vfs.MkdirAll(tt.ctx, tt.virtualPath)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Empty(t, backend.mkdirs, "nothing created")
		})
	}
}

func TestFS_MkdirAll_IOError(t *testing.T) {
	dir := t.TempDir()

	vfs := newFS(t, afero.NewReadOnlyFs(afero.NewOsFs()), map[string]any{
		"data": dir,
	})

	err := vfs.MkdirAll(t.Context(), "data/a/b")
	require.ErrorIs(t, err, fserr.IO)
	require.ErrorIs(t, err, unix.EPERM)

	var fsErr *fserr.Error

	require.ErrorAs(t, err, &fsErr)
	assert.Equal(t, filepath.Join(dir, "a"), fsErr.Path)
	assert.Contains(t, err.Error(), "Unable to create directory:")
}
