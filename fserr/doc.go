// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package fserr provides the error taxonomy of vrootfs.
//
// Every error returned by vrootfs carries a stable [Kind]. Callers are
// supposed to branch on the kind only, using [errors.Is] with one of the kind
// constants or [KindOf]. The message is free form diagnostic text spanning
// one or more lines and must not be parsed.
//
//	err := fsys.MkdirAll(ctx, "src/a/b")
//	if errors.Is(err, fserr.OutOfBounds) {
//	    ...
//	}
package fserr
