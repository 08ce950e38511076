// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package vpath implements the lexical algebra of virtual paths.
//
// A virtual path uses "/" as separator. Its first segment is the name of a
// root, the rest is a path relative to that root. Nothing in this package
// touches the file system.
package vpath
