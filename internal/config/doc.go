// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config reads vrootfs configuration files.
//
// A configuration file is a YAML document with a "roots" mapping of root
// names to a directory path or a list of directory paths:
//
//	roots:
//	  src: ./src
//	  assets:
//	    - ./assets
//	    - /usr/share/app/assets
//
// Environment variables in the file are expanded with [os.ExpandEnv] before
// it is parsed.
package config
