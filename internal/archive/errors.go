// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"errors"
	"io/fs"
)

var (
	// ErrNotRegularFile is returned if a regular file is expected but the
	// source is something else.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrUnsupportedType is returned for file types that can not be archived,
	// like devices, sockets and named pipes.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrReadLinkNotSupported is returned if a symbolic link is found in an
	// [fs.FS] that does not implement [ReadLinkFS].
	ErrReadLinkNotSupported = errors.New("reading symbolic links not supported")
)

// PathError records an error and the operation and file path that caused it.
type PathError = fs.PathError
