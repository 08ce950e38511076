// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"os"
	"strings"
)

const envArgsVar = "VROOTFS_ARGS"

// EnvArgs returns vrootfs arguments from the environment.
func EnvArgs() []string {
	return strings.Fields(os.Getenv(envArgsVar))
}

// MergedArgs returns the arguments with the environment arguments inserted
// in front of the given ones, so flags given on the command line win.
func MergedArgs(args []string) []string {
	envArgs := EnvArgs()
	if len(envArgs) == 0 {
		return args
	}

	merged := make([]string, 0, len(envArgs)+len(args))
	merged = append(merged, envArgs...)
	merged = append(merged, args...)

	return merged
}
