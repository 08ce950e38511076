// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vrootfs

import (
	"errors"
	"io"
	"io/fs"
	"slices"
	"strings"

	"github.com/aibor/vrootfs/fserr"
	"github.com/aibor/vrootfs/internal/archive"
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// DirFS returns a read-only [fs.FS] for the directory of the given virtual
// path that overlays all directories bound to its root.
//
// A name is looked up in configured order and the first directory it exists
// in wins. Directory listings are merged across all directories, where
// entries of earlier directories shadow the ones of later directories with
// the same name. Symbolic links are followed by Open and Stat. Use the
// Lstat and ReadLink methods of the returned [fs.FS] to read them instead.
//
// It fails with [fserr.FileNotFound] if the virtual path does not exist in
// any directory and with [fserr.IO] if it is not a directory.
func (f *FS) DirFS(virtualPath string) (fs.FS, error) {
	info, err := f.Stat(virtualPath)
	if err != nil {
		return nil, err
	}

	paths, err := f.AllAbsPaths(virtualPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, fserr.IOError(paths[0], &fs.PathError{
			Op:   "opendir",
			Path: virtualPath,
			Err:  unix.ENOTDIR,
		}, "Unable to open directory:")
	}

	layers := make([]afero.IOFS, 0, len(paths))
	for _, path := range paths {
		layers = append(layers, afero.NewIOFS(afero.NewBasePathFs(f.fsys.Fs, path)))
	}

	return &overlay{layers: layers}, nil
}

var (
	_ fs.FS              = (*overlay)(nil)
	_ fs.StatFS          = (*overlay)(nil)
	_ fs.ReadDirFS       = (*overlay)(nil)
	_ archive.ReadLinkFS = (*overlay)(nil)
)

// overlay is a read-only [fs.FS] that stacks several directories.
type overlay struct {
	layers []afero.IOFS
}

type statFunc func(layer afero.IOFS, name string) (fs.FileInfo, error)

func stat(layer afero.IOFS, name string) (fs.FileInfo, error) {
	return layer.Stat(name)
}

func lstat(layer afero.IOFS, name string) (fs.FileInfo, error) {
	lstater, ok := layer.Fs.(afero.Lstater)
	if !ok {
		return layer.Stat(name)
	}

	info, _, err := lstater.LstatIfPossible(name)

	return info, err //nolint:wrapcheck
}

// Open opens the named file of the first layer it exists in. Directories are
// opened with the merged listing of all layers.
func (o *overlay) Open(name string) (fs.File, error) {
	idx, info, err := o.find(name, stat)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}

	if !info.IsDir() {
		return o.layers[idx].Open(name) //nolint:wrapcheck
	}

	entries, err := o.readDir(name, idx)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}

	return &overlayDir{info: info, entries: entries}, nil
}

// Stat implements [fs.StatFS].
func (o *overlay) Stat(name string) (fs.FileInfo, error) {
	_, info, err := o.find(name, stat)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}

	return info, nil
}

// Lstat is like Stat but does not follow symbolic links.
func (o *overlay) Lstat(name string) (fs.FileInfo, error) {
	_, info, err := o.find(name, lstat)
	if err != nil {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: err}
	}

	return info, nil
}

// ReadDir implements [fs.ReadDirFS]. Entries are sorted by name.
func (o *overlay) ReadDir(name string) ([]fs.DirEntry, error) {
	idx, info, err := o.find(name, stat)
	if err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}

	if !info.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: unix.ENOTDIR}
	}

	entries, err := o.readDir(name, idx)
	if err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}

	return entries, nil
}

// ReadLink returns the target of the symbolic link with the given name.
func (o *overlay) ReadLink(name string) (string, error) {
	idx, info, err := o.find(name, lstat)
	if err != nil {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: err}
	}

	linkReader, ok := o.layers[idx].Fs.(afero.LinkReader)
	if !ok || info.Mode().Type() != fs.ModeSymlink {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
	}

	return linkReader.ReadlinkIfPossible(name) //nolint:wrapcheck
}

// find returns the index of the first layer the given name exists in along
// with its info.
func (o *overlay) find(name string, statFn statFunc) (int, fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return 0, nil, fs.ErrInvalid
	}

	for idx, layer := range o.layers {
		info, err := statFn(layer, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return 0, nil, err
		}

		return idx, info, nil
	}

	return 0, nil, fs.ErrNotExist
}

// readDir merges the listings of the directory with the given name of all
// layers starting at the given one.
func (o *overlay) readDir(name string, first int) ([]fs.DirEntry, error) {
	var (
		entries []fs.DirEntry
		seen    = make(map[string]bool)
	)

	for _, layer := range o.layers[first:] {
		info, err := layer.Stat(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		if !info.IsDir() {
			continue
		}

		infos, err := afero.ReadDir(layer.Fs, name)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		for _, child := range infos {
			if seen[child.Name()] {
				continue
			}

			seen[child.Name()] = true

			entries = append(entries, fs.FileInfoToDirEntry(child))
		}
	}

	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})

	return entries, nil
}

var (
	_ fs.File        = (*overlayDir)(nil)
	_ fs.ReadDirFile = (*overlayDir)(nil)
)

// overlayDir is an open directory of an [overlay].
type overlayDir struct {
	info    fs.FileInfo
	entries []fs.DirEntry
	offset  int
}

// Stat implements [fs.File].
func (d *overlayDir) Stat() (fs.FileInfo, error) {
	return d.info, nil
}

// Read implements [fs.File].
func (d *overlayDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.info.Name(), Err: unix.EISDIR}
}

// Close implements [fs.File].
func (*overlayDir) Close() error {
	return nil
}

// ReadDir implements [fs.ReadDirFile].
func (d *overlayDir) ReadDir(count int) ([]fs.DirEntry, error) {
	start := d.offset
	end := len(d.entries)
	available := end - start

	if available == 0 && count > 0 {
		return nil, io.EOF
	}

	if count > 0 && available > count {
		end = start + count
	}

	d.offset = end

	return d.entries[start:end], nil
}
