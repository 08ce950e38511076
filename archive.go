// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vrootfs

import (
	"context"
	"io"

	"github.com/aibor/vrootfs/fserr"
	"github.com/aibor/vrootfs/internal/archive"
)

// WriteArchive writes the directory of the given virtual path as newc CPIO
// archive to the given writer. The content is the overlay of all directories
// bound to its root as returned by [FS.DirFS]. Names in the archive are
// relative to the directory.
//
// It fails with [fserr.IO] if reading any file or writing the archive fails.
func (f *FS) WriteArchive(ctx context.Context, virtualPath string, w io.Writer) error {
	dirFS, err := f.DirFS(virtualPath)
	if err != nil {
		return err
	}

	writer := archive.NewCPIOWriter(w)

	err = archive.WriteFS(ctx, dirFS, writer)
	if err != nil {
		if ctx.Err() != nil {
			return fserr.Normalize(ctx.Err(), "Export of `"+virtualPath+"` aborted.")
		}

		return fserr.Wrap(fserr.IO, err, "Unable to archive `"+virtualPath+"`:")
	}

	err = writer.Close()
	if err != nil {
		return fserr.Wrap(fserr.IO, err, "Unable to finish archive:")
	}

	return nil
}
