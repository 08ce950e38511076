// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package roots

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/aibor/vrootfs/fserr"
	"github.com/spf13/afero"
)

// Check validates the given root definitions and builds a [Table] from them.
//
// Each value must be a directory path or a non-empty list of directory paths.
// Every path is made absolute relative to the current working directory and
// must be an existing directory on the given file system.
//
// The definitions are rewritten in place: each value is replaced by the list
// of absolute paths. The returned [Table] keeps its own copy.
func Check(fsys afero.Fs, defs map[string]any) (Table, error) {
	table := Table{
		prefixes: make(map[string][]string, len(defs)),
	}

	for _, name := range slices.Sorted(maps.Keys(defs)) {
		dirs, err := definition(name, defs[name])
		if err != nil {
			return Table{}, err
		}

		defs[name] = dirs

		for idx, dir := range dirs {
			abs, err := checkDir(fsys, name, dir)
			if err != nil {
				return Table{}, err
			}

			dirs[idx] = abs
		}

		table.prefixes[name] = slices.Clone(dirs)
	}

	return table, nil
}

func definition(name string, value any) ([]string, error) {
	var dirs []string

	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []string:
		dirs = v
	case []any:
		dirs = make([]string, 0, len(v))

		for _, item := range v {
			dir, ok := item.(string)
			if !ok {
				return nil, badDefinition(name)
			}

			dirs = append(dirs, dir)
		}
	default:
		return nil, badDefinition(name)
	}

	if len(dirs) == 0 {
		return nil, badDefinition(name)
	}

	return dirs, nil
}

func badDefinition(name string) error {
	return fserr.New(fserr.BadRootDefinition,
		"Bad root definition for `"+name+"`!",
		"Must be a string or an array of strings.",
	)
}

func checkDir(fsys afero.Fs, name, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fserr.Wrap(fserr.DirectoryNotFound, err,
			"Error in the definition of root `"+name+"`!",
			"Unable to resolve directory:",
			"  "+dir,
		)
	}

	isDir, err := afero.IsDir(fsys, abs)
	if err != nil || !isDir {
		return "", &fserr.Error{
			Kind: fserr.DirectoryNotFound,
			Msg: fmt.Sprintf(
				"Error in the definition of root `%s`!\nThis directory does not exist:\n  %s",
				name, abs,
			),
			Path: abs,
			Err:  err,
		}
	}

	return abs, nil
}
