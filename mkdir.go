// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vrootfs

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aibor/vrootfs/fserr"
	"github.com/aibor/vrootfs/internal/vpath"
)

// MkdirAll creates the directory of the given virtual path along with all
// missing parents in the primary prefix of its root.
//
// Levels are handled one after another from the root down. Each level is
// only created if it does not exist yet, with a single level mkdir call, so
// it does not rely on the backend creating parents. It does nothing if all
// levels exist already.
//
// The first failing level aborts the operation with an [fserr.IO] error
// naming its absolute path. Levels created before are kept. The context is
// checked before each level.
func (f *FS) MkdirAll(ctx context.Context, virtualPath string) error {
	cleaned, err := vpath.Clean(virtualPath)
	if err != nil {
		return err
	}

	segments := strings.Split(cleaned, "/")
	current := segments[0]

	// The root level is never created, it is only validated.
	_, err = f.AbsPath(current)
	if err != nil {
		return err
	}

	for _, segment := range segments[1:] {
		err := ctx.Err()
		if err != nil {
			return fserr.Normalize(err, "MkdirAll of `"+virtualPath+"` aborted.")
		}

		current += "/" + segment

		err = f.mkdir(current)
		if err != nil {
			return err
		}
	}

	return nil
}

// mkdir creates the single directory level of the given virtual path, unless
// it exists already.
func (f *FS) mkdir(virtualPath string) error {
	path, err := f.AbsPath(virtualPath)
	if err != nil {
		return err
	}

	exists, err := f.fsys.Exists(path)
	if err != nil {
		return fserr.IOError(path, err, "Unable to read stats of directory:")
	}

	if exists {
		return nil
	}

	slog.Debug("Create directory", slog.String("path", path))

	err = f.fsys.Mkdir(path, dirMode)
	if err != nil {
		return fserr.IOError(path, err, "Unable to create directory:")
	}

	return nil
}
