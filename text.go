// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vrootfs

import (
	"context"

	"github.com/aibor/vrootfs/fserr"
)

// ReadString reads the first existing candidate of the given virtual path
// and decodes it with the given encoding. An empty encoding means
// [DefaultEncoding].
//
// It fails with [fserr.FileNotFound] if no candidate exists and with
// [fserr.IO] if reading fails.
func (f *FS) ReadString(virtualPath, encoding string) (string, error) {
	const hint = "This error occurs in ReadString()."

	enc, err := lookupEncoding(encoding)
	if err != nil {
		return "", fserr.Normalize(err, hint)
	}

	path, err := f.existingPath(virtualPath)
	if err != nil {
		return "", fserr.Normalize(err, hint)
	}

	if path == "" {
		return "", fserr.Normalize(notFound(virtualPath), hint)
	}

	data, err := f.fsys.ReadFile(path)
	if err != nil {
		return "", fserr.Normalize(
			fserr.IOError(path, err, "Unable to read file:"), hint)
	}

	text, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fserr.Wrap(fserr.Unknown, err,
			"Unable to decode file `"+path+"`:",
		)
	}

	return string(text), nil
}

// WriteString writes the given text encoded with the given encoding into
// the primary prefix of the given virtual path. An empty encoding means
// [DefaultEncoding]. Missing parent directories are created with
// [FS.MkdirAll] first.
func (f *FS) WriteString(
	ctx context.Context,
	virtualPath, text, encoding string,
) error {
	const hint = "This error occurs in WriteString()."

	enc, err := lookupEncoding(encoding)
	if err != nil {
		return fserr.Normalize(err, hint)
	}

	data, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return fserr.Wrap(fserr.Unknown, err,
			"Unable to encode text for `"+virtualPath+"`:",
		)
	}

	err = f.MkdirAll(ctx, Parent(virtualPath))
	if err != nil {
		return fserr.Normalize(err, hint)
	}

	path, err := f.AbsPath(virtualPath)
	if err != nil {
		return fserr.Normalize(err, hint)
	}

	err = f.fsys.WriteFile(path, data, fileMode)
	if err != nil {
		return fserr.Normalize(
			fserr.IOError(path, err, "Unable to write file:"), hint)
	}

	return nil
}
