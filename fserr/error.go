// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package fserr

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/sys/unix"
)

const prefix = "vrootfs"

// Error is the error type returned by vrootfs.
type Error struct {
	// Kind of the error. Callers branch on it.
	Kind Kind
	// Msg is the diagnostic message. It may span multiple lines.
	Msg string
	// Path is the real absolute path the error is about, if any.
	Path string
	// Err is the underlying error, if any.
	Err error
}

// New creates a new [Error] of the given [Kind]. The given lines are joined
// with newlines to form the message.
func New(kind Kind, lines ...string) *Error {
	return &Error{
		Kind: kind,
		Msg:  strings.Join(lines, "\n"),
	}
}

// Wrap creates a new [Error] of the given [Kind] caused by err. The message
// of err is added as last line.
func Wrap(kind Kind, err error, lines ...string) *Error {
	e := New(kind, slices.Concat(lines, []string{describe(err)})...)
	e.Err = err

	return e
}

// IOError creates a new [Error] of [IO] kind for a failed operation on the
// given real path.
func IOError(path string, err error, lines ...string) *Error {
	e := Wrap(IO, err, slices.Concat(lines, []string{"  " + path})...)
	e.Path = path

	return e
}

// Error implements the [error] interface.
func (e *Error) Error() string {
	return "[" + prefix + "::" + string(e.Kind) + "] " + e.Msg
}

// Is implements the [errors.Is] interface. An [Error] matches its own [Kind]
// and any other [Error] of the same kind.
func (e *Error) Is(other error) bool {
	switch target := other.(type) {
	case Kind:
		return e.Kind == target
	case *Error:
		return e.Kind == target.Kind
	default:
		return false
	}
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the [Kind] of the given error. A bare [Kind] is its own
// kind. Any other error that is not an [Error] is of [Unknown] kind. It returns the empty string for nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	var kind Kind
	if errors.As(err, &kind) {
		return kind
	}

	return Unknown
}

// Normalize converts any error into an [Error]. Errors that are not an
// [Error] already become [Unknown] errors keeping the original message. The
// given extra lines are appended to the message.
//
// It returns nil if err is nil.
func Normalize(err error, extra ...string) error {
	if err == nil {
		return nil
	}

	kind := KindOf(err)
	msg := describe(err)
	path := ""

	var e *Error
	if errors.As(err, &e) {
		msg = e.Msg
		path = e.Path
	}

	lines := slices.Concat([]string{msg}, extra)

	return &Error{
		Kind: kind,
		Msg:  strings.TrimSpace(strings.Join(lines, "\n")),
		Path: path,
		Err:  err,
	}
}

func describe(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	var errno unix.Errno
	if errors.As(err, &errno) {
		if name := unix.ErrnoName(errno); name != "" {
			msg += " (" + name + ")"
		}
	}

	return msg
}
