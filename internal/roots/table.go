// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package roots

import (
	"maps"
	"slices"
)

// Table maps root names to their ordered list of absolute directory paths.
//
// The first path of a root is its primary prefix. A Table is immutable, so it
// is safe for concurrent use. Create one with [Check].
type Table struct {
	prefixes map[string][]string
}

// Prefixes returns a copy of the directory list of the given root.
func (t Table) Prefixes(name string) ([]string, bool) {
	prefixes, exists := t.prefixes[name]
	if !exists {
		return nil, false
	}

	return slices.Clone(prefixes), true
}

// Names returns the sorted names of all roots.
func (t Table) Names() []string {
	return slices.Sorted(maps.Keys(t.prefixes))
}

// Len returns the number of roots.
func (t Table) Len() int {
	return len(t.prefixes)
}
