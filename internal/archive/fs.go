// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"context"
	"fmt"
	"io/fs"
)

// ReadLinkFS is a [fs.FS] with additional methods for reading symbolic links.
//
// Replace with [fs.ReadLinkFS] once the minimum Go version is 1.25.
type ReadLinkFS interface {
	fs.FS

	ReadLink(name string) (string, error)
	Lstat(name string) (fs.FileInfo, error)
}

// ReadLink returns the destination the symbolic link with the given name
// points to.
//
// The given [fs.FS] must implement [ReadLinkFS], otherwise
// [ErrReadLinkNotSupported] is returned.
func ReadLink(fsys fs.FS, name string) (string, error) {
	rlFS, ok := fsys.(ReadLinkFS)
	if !ok {
		return "", &PathError{
			Op:   "readlink",
			Path: name,
			Err:  ErrReadLinkNotSupported,
		}
	}

	return rlFS.ReadLink(name) //nolint:wrapcheck
}

// WriteFS writes all entries of the given [fs.FS] to the given [Writer].
//
// Entries are written in lexical order with parents before their children.
// The root directory itself is not written. Regular files keep their
// permission bits. The context is checked before each entry.
func WriteFS(ctx context.Context, fsys fs.FS, writer Writer) error {
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		err = ctx.Err()
		if err != nil {
			return err //nolint:wrapcheck
		}

		if path == "." {
			return nil
		}

		return writeEntry(fsys, path, entry, writer)
	})
}

func writeEntry(fsys fs.FS, path string, entry fs.DirEntry, writer Writer) error {
	switch entry.Type() {
	case fs.ModeDir:
		return writer.WriteDirectory(path)
	case fs.ModeSymlink:
		target, err := ReadLink(fsys, path)
		if err != nil {
			return err
		}

		return writer.WriteLink(path, target)
	case 0:
		info, err := entry.Info()
		if err != nil {
			return err //nolint:wrapcheck
		}

		source, err := fsys.Open(path)
		if err != nil {
			return err //nolint:wrapcheck
		}
		defer source.Close()

		return writer.WriteRegular(path, source, info.Mode().Perm())
	default:
		return fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, path, entry.Type())
	}
}
