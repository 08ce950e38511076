// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package vrootfs maps symbolic root names to real directories and lets
// callers address files by virtual paths relative to those roots.
//
// A virtual path starts with the name of a root followed by a POSIX style
// path relative to it, like "src/pacman/levels/level-one.dat". A root may be
// bound to several real directories. They are searched in the configured
// order by read operations, while write operations only ever target the
// first one, the primary prefix. Virtual paths are normalized lexically and
// may never climb above their root.
//
//	fsys, err := vrootfs.New(vrootfs.Config{
//	    Roots: map[string]any{
//	        "src": []string{"./src", "/usr/share/common"},
//	        "dst": "/var/www/foobar",
//	    },
//	})
//	if err != nil {
//	    ...
//	}
//
//	err = fsys.MkdirAll(ctx, "dst/assets/img")
//
// All errors returned carry a [fserr.Kind]. Use [errors.Is] with one of the
// kinds to branch on them.
//
// Operations are not coordinated with each other. Concurrent calls on
// overlapping trees may race, just like the underlying file system calls do.
package vrootfs
