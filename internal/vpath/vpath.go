// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vpath

import (
	"path/filepath"
	"strings"

	"github.com/aibor/vrootfs/fserr"
)

const (
	separator = "/"
	current   = "."
	parent    = ".."
)

// Lookup provides the prefixes bound to a root name.
type Lookup interface {
	Prefixes(name string) ([]string, bool)
}

// Normalize resolves "." and ".." segments of the given path lexically.
//
// It fails with [fserr.PosixExpected] if the path contains a backslash and
// with [fserr.OutOfBounds] if a ".." segment would climb above the start of
// the path. Empty segments are dropped. The result is the empty string if
// all segments collapse.
func Normalize(path string) (string, error) {
	if strings.ContainsRune(path, '\\') {
		return "", fserr.New(fserr.PosixExpected,
			"Virtual paths must use \"/\" as delimiter!",
			"  "+path,
		)
	}

	stack := make([]string, 0, strings.Count(path, separator)+1)

	for segment := range strings.SplitSeq(path, separator) {
		switch segment {
		case "", current:
		case parent:
			if len(stack) == 0 {
				return "", fserr.New(fserr.OutOfBounds,
					"Path is out of the bounds of its root!",
					"  "+path,
				)
			}

			stack = stack[:len(stack)-1]
		default:
			stack = append(stack, segment)
		}
	}

	return strings.Join(stack, separator), nil
}

// Clean trims surrounding whitespace and all leading slashes of the given
// virtual path and normalizes it.
func Clean(path string) (string, error) {
	path = strings.TrimSpace(path)
	for strings.HasPrefix(path, separator) {
		path = strings.TrimSpace(path[1:])
	}

	return Normalize(path)
}

// Split returns the prefixes of the root the given virtual path starts with
// and the remainder relative to that root.
//
// The remainder is "." if the path consists of the root name only. It fails
// with [fserr.UnknownRoot] if the root is not known by the given [Lookup].
func Split(roots Lookup, path string) ([]string, string, error) {
	cleaned, err := Clean(path)
	if err != nil {
		return nil, "", err
	}

	name, remainder, found := strings.Cut(cleaned, separator)
	if !found {
		remainder = current
	}

	prefixes, exists := roots.Prefixes(name)
	if !exists {
		return nil, "", fserr.New(fserr.UnknownRoot,
			"Unknown root \""+name+"\" in path \""+path+"\"!",
		)
	}

	return prefixes, remainder, nil
}

// Join joins the remainder of a virtual path onto a real directory prefix.
func Join(prefix, remainder string) string {
	return filepath.Join(prefix, filepath.FromSlash(remainder))
}

// Parent returns the virtual path up to the last slash. If there is no slash,
// the path is returned unchanged.
func Parent(path string) string {
	idx := strings.LastIndex(path, separator)
	if idx < 0 {
		return path
	}

	return path[:idx]
}
