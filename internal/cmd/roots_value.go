// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// RootsValue is a [flag.Value] collecting root definitions of the form
// "name=path[,path...]". The flag may be given more than once. A later
// definition of the same root replaces the earlier one.
//
// Paths are kept as given. They are resolved when the file system is
// created.
type RootsValue map[string][]string

func (r *RootsValue) String() string {
	if r == nil || *r == nil {
		return ""
	}

	defs := make([]string, 0, len(*r))
	for _, name := range slices.Sorted(maps.Keys(*r)) {
		defs = append(defs, name+"="+strings.Join((*r)[name], ","))
	}

	return strings.Join(defs, " ")
}

func (r *RootsValue) Set(s string) error {
	name, paths, found := strings.Cut(s, "=")
	name = strings.TrimSpace(name)

	if !found || name == "" {
		return fmt.Errorf("%w: %q (use name=path[,path...])", ErrInvalidRootFlag, s)
	}

	var dirs []string

	for path := range strings.SplitSeq(paths, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			return fmt.Errorf("%w: empty path for root %q", ErrInvalidRootFlag, name)
		}

		dirs = append(dirs, path)
	}

	if *r == nil {
		*r = make(RootsValue)
	}

	(*r)[name] = dirs

	return nil
}
