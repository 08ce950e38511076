// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package fserr

// Kind is the symbolic category of an [Error].
//
// Kind implements the error interface, so it can be used as target for
// [errors.Is].
type Kind string

const (
	// MissingArgument is returned if the configuration lacks the roots
	// mapping or has it in the wrong shape.
	MissingArgument Kind = "missing-argument"

	// BadRootDefinition is returned if a root is neither defined by a
	// string nor by a non-empty list of strings.
	BadRootDefinition Kind = "bad-root-definition"

	// DirectoryNotFound is returned if a configured root directory does not
	// exist.
	DirectoryNotFound Kind = "directory-not-found"

	// UnknownRoot is returned if a virtual path starts with a name that is
	// not a configured root.
	UnknownRoot Kind = "unknown-root"

	// PosixExpected is returned if a virtual path contains a backslash.
	PosixExpected Kind = "posix-expected"

	// OutOfBounds is returned if a virtual path tries to leave its root.
	OutOfBounds Kind = "out-of-bounds"

	// FileNotFound is returned if none of the candidates of a virtual path
	// exists.
	FileNotFound Kind = "file-not-found"

	// IO is returned for failures of the underlying storage.
	IO Kind = "io"

	// Unknown is used for errors from unknown sources.
	Unknown Kind = "unknown"
)

// Error implements the [error] interface.
func (k Kind) Error() string {
	return string(k)
}
