// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vrootfs

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/aibor/vrootfs/fserr"
)

// fringeEntry is a pending path of a [FS.Clear] run.
type fringeEntry struct {
	path string
	dir  bool
}

// fringe is the LIFO work queue of a [FS.Clear] run.
type fringe []fringeEntry

func (f *fringe) push(entries ...fringeEntry) {
	*f = append(*f, entries...)
}

func (f *fringe) pop() (fringeEntry, bool) {
	if len(*f) == 0 {
		return fringeEntry{}, false
	}

	last := len(*f) - 1
	entry := (*f)[last]
	*f = (*f)[:last]

	return entry, true
}

// Clear removes all files and directories inside the directory of the given
// virtual path in the primary prefix of its root. The directory itself is
// kept.
//
// The tree is traversed with an explicit stack, so the depth of the tree
// does not matter. A directory is removed only after everything found in it
// is gone. Symbolic links are removed, never followed.
//
// Any failure aborts the operation with an [fserr.IO] error naming the
// absolute path that failed. Whatever was removed before stays removed. The
// context is checked before each step.
func (f *FS) Clear(ctx context.Context, virtualPath string) error {
	path, err := f.AbsPath(virtualPath)
	if err != nil {
		return err
	}

	entries, err := f.readDir(path)
	if err != nil {
		return err
	}

	var work fringe

	work.push(entries...)

	for {
		err := ctx.Err()
		if err != nil {
			return fserr.Normalize(err, "Clear of `"+virtualPath+"` aborted.")
		}

		entry, ok := work.pop()
		if !ok {
			return nil
		}

		err = f.clearStep(&work, entry)
		if err != nil {
			return err
		}
	}
}

func (f *FS) clearStep(work *fringe, entry fringeEntry) error {
	if !entry.dir {
		slog.Debug("Remove file", slog.String("path", entry.path))

		err := f.fsys.Remove(entry.path)
		if err != nil {
			return fserr.IOError(entry.path, err, "Unable to delete file:")
		}

		return nil
	}

	children, err := f.readDir(entry.path)
	if err != nil {
		return err
	}

	if len(children) > 0 {
		// Revisit the directory once all children are gone.
		work.push(entry)
		work.push(children...)

		return nil
	}

	slog.Debug("Remove directory", slog.String("path", entry.path))

	err = f.fsys.Remove(entry.path)
	if err != nil {
		return fserr.IOError(entry.path, err, "Unable to remove directory:")
	}

	return nil
}

// readDir returns the entries of the given directory. Entries are typed by
// lstat, so symbolic links to directories are not directories.
func (f *FS) readDir(path string) ([]fringeEntry, error) {
	infos, err := f.fsys.ReadDir(path)
	if err != nil {
		return nil, fserr.IOError(path, err,
			"Unable to read content of directory:")
	}

	entries := make([]fringeEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fringeEntry{
			path: filepath.Join(path, info.Name()),
			dir:  info.IsDir(),
		})
	}

	return entries, nil
}
