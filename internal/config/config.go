// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the content of a configuration file.
type File struct {
	// Roots is the roots definition as decoded from YAML. It is nil if the
	// file has no roots key. A proper definition is a map[string]any with
	// string or []any values. Anything else is passed on as is, so it is
	// rejected with the same errors as any other malformed definition.
	Roots any `yaml:"roots"`
}

// Read reads and parses the configuration file with the given name from the
// given [fs.FS].
//
// If the file does not exist, the returned error matches [fs.ErrNotExist].
func Read(fsys fs.FS, name string) (*File, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse([]byte(os.ExpandEnv(string(content))))
}

// Parse parses the given YAML content.
func Parse(content []byte) (*File, error) {
	var file File

	err := yaml.Unmarshal(content, &file)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &file, nil
}
