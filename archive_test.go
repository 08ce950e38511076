// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vrootfs_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/vrootfs/fserr"
	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_WriteArchive(t *testing.T) {
	primary := t.TempDir()
	fallback := t.TempDir()

	writeFile(t, filepath.Join(primary, "sub", "file.txt"), "primary")
	writeFile(t, filepath.Join(fallback, "sub", "file.txt"), "fallback")
	writeFile(t, filepath.Join(fallback, "extra.txt"), "extra")
	require.NoError(t, os.Symlink("sub/file.txt", filepath.Join(primary, "link")))

	vfs := newFS(t, nil, map[string]any{
		"src": []string{primary, fallback},
	})

	var buf bytes.Buffer

	err := vfs.WriteArchive(t.Context(), "src", &buf)
	require.NoError(t, err)

	type entry struct {
		name     string
		body     string
		linkname string
	}

	var actual []entry

	reader := cpio.NewReader(&buf)

	for {
		hdr, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		require.NoError(t, err)

		body, err := io.ReadAll(reader)
		require.NoError(t, err)

		actual = append(actual, entry{hdr.Name, string(body), hdr.Linkname})
	}

	expected := []entry{
		{name: "extra.txt", body: "extra"},
		{name: "link", linkname: "sub/file.txt"},
		{name: "sub"},
		{name: "sub/file.txt", body: "primary"},
	}

	assert.Equal(t, expected, actual)
}

func TestFS_WriteArchive_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "file.txt"), "content")

	vfs := newFS(t, nil, map[string]any{"src": dir})

	t.Run("missing", func(t *testing.T) {
		err := vfs.WriteArchive(t.Context(), "src/missing", io.Discard)
		require.ErrorIs(t, err, fserr.FileNotFound)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := vfs.WriteArchive(ctx, "src", io.Discard)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, fserr.Unknown, fserr.KindOf(err))
	})
}
