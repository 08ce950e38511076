// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vrootfs

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/aibor/vrootfs/fserr"
	"github.com/aibor/vrootfs/internal/roots"
	"github.com/aibor/vrootfs/internal/vpath"
	"github.com/spf13/afero"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// Config is the configuration for [New].
type Config struct {
	// Roots maps root names to either a directory path or a list of
	// directory paths. Relative paths are resolved against the current
	// working directory. Accepted types are map[string]any,
	// map[string]string and map[string][]string. Values of a map[string]any
	// are rewritten in place with the resolved absolute paths.
	Roots any

	// Fs is the storage backend. If nil, the operating system's file system
	// is used.
	Fs afero.Fs
}

// FS is a virtual file system over a fixed set of roots.
//
// The root table is immutable once created, so an FS is safe for concurrent
// use. The operations themselves are not coordinated.
type FS struct {
	roots roots.Table
	fsys  afero.Afero
}

// New creates a new [FS] from the given [Config].
//
// It fails with [fserr.MissingArgument] if the roots are missing or not a
// mapping, with [fserr.BadRootDefinition] if a root is neither a string nor a
// list of strings and with [fserr.DirectoryNotFound] if a configured
// directory does not exist.
func New(cfg Config) (*FS, error) {
	defs, err := roots.FromConfig(cfg.Roots)
	if err != nil {
		return nil, err
	}

	backend := cfg.Fs
	if backend == nil {
		backend = afero.NewOsFs()
	}

	table, err := roots.Check(backend, defs)
	if err != nil {
		return nil, err
	}

	slog.Debug("Roots checked", slog.Any("roots", table.Names()))

	return &FS{
		roots: table,
		fsys:  afero.Afero{Fs: backend},
	}, nil
}

// Roots returns the sorted names of all configured roots.
func (f *FS) Roots() []string {
	return f.roots.Names()
}

// Prefixes returns the absolute directories bound to the given root in
// configured order.
func (f *FS) Prefixes(root string) ([]string, bool) {
	return f.roots.Prefixes(root)
}

// AllAbsPaths returns the real absolute paths of the given virtual path, one
// for each directory bound to its root, in configured order.
func (f *FS) AllAbsPaths(virtualPath string) ([]string, error) {
	prefixes, remainder, err := vpath.Split(f.roots, virtualPath)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		paths = append(paths, vpath.Join(prefix, remainder))
	}

	return paths, nil
}

// AbsPath returns the real absolute path of the given virtual path in the
// primary prefix of its root. This is the path all mutating operations work
// on.
func (f *FS) AbsPath(virtualPath string) (string, error) {
	prefixes, remainder, err := vpath.Split(f.roots, virtualPath)
	if err != nil {
		return "", err
	}

	return vpath.Join(prefixes[0], remainder), nil
}

// Exists reports whether the given virtual path exists in any of the
// directories bound to its root.
//
// Errors are returned for malformed virtual paths only. Candidates that can
// not be checked count as absent.
func (f *FS) Exists(virtualPath string) (bool, error) {
	path, err := f.existingPath(virtualPath)
	if err != nil {
		return false, err
	}

	return path != "", nil
}

// Stat returns the [fs.FileInfo] of the first existing candidate of the given
// virtual path. It fails with [fserr.FileNotFound] if there is none.
func (f *FS) Stat(virtualPath string) (fs.FileInfo, error) {
	path, err := f.existingPath(virtualPath)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return nil, notFound(virtualPath)
	}

	info, err := f.fsys.Stat(path)
	if err != nil {
		return nil, fserr.IOError(path, err, "Unable to read stats of file:")
	}

	return info, nil
}

// existingPath returns the first candidate of the given virtual path that
// exists. It returns the empty string if none exists.
func (f *FS) existingPath(virtualPath string) (string, error) {
	paths, err := f.AllAbsPaths(virtualPath)
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		_, err := f.fsys.Stat(path)
		if err == nil {
			return path, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Skip candidate",
				slog.String("path", path),
				slog.Any("error", err),
			)
		}
	}

	return "", nil
}

// Parent returns the virtual path of the parent directory of the given
// virtual path. It is the part before the last slash. If there is no slash,
// the path is returned unchanged.
func Parent(virtualPath string) string {
	return vpath.Parent(virtualPath)
}

func notFound(virtualPath string) error {
	return fserr.New(fserr.FileNotFound,
		"Unable to find `"+virtualPath+"`!",
	)
}
