// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package roots

import (
	"github.com/aibor/vrootfs/fserr"
)

// FromConfig returns the root definitions from the given configuration
// value.
//
// The value must be a mapping from root name to definition. Everything else,
// including nil and lists, fails with [fserr.MissingArgument].
func FromConfig(value any) (map[string]any, error) {
	switch v := value.(type) {
	case map[string]any:
		return v, nil
	case map[string]string:
		defs := make(map[string]any, len(v))
		for name, dir := range v {
			defs[name] = dir
		}

		return defs, nil
	case map[string][]string:
		defs := make(map[string]any, len(v))
		for name, dirs := range v {
			defs[name] = dirs
		}

		return defs, nil
	default:
		return nil, usageError()
	}
}

func usageError() error {
	return fserr.New(fserr.MissingArgument,
		"Mandatory argument is missing!",
		"Expected something like this:",
		"  fsys, err := vrootfs.New(vrootfs.Config{",
		"    Roots: map[string]any{",
		"      \"src\": []string{",
		"        \"/home/me/projects/foobar/src\",",
		"        \"/usr/share/common_libraries\",",
		"      },",
		"      \"dst\": \"/var/www/foobar\",",
		"    },",
		"  })",
	)
}
