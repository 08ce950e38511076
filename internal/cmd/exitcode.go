// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"

	"github.com/aibor/vrootfs/fserr"
)

// Exit codes follow sysexits.h where one fits.
const (
	exitFailure = -1
	exitMissing = 1
	exitUsage   = 64
	exitDataErr = 65
	exitNoInput = 66
	exitIOErr   = 74
	exitConfig  = 78
)

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrMissing):
		return exitMissing
	case errors.Is(err, ErrConfigFile):
		return exitConfig
	}

	switch fserr.KindOf(err) {
	case fserr.MissingArgument, fserr.BadRootDefinition, fserr.DirectoryNotFound:
		return exitConfig
	case fserr.UnknownRoot, fserr.PosixExpected, fserr.OutOfBounds:
		return exitDataErr
	case fserr.FileNotFound:
		return exitNoInput
	case fserr.IO:
		return exitIOErr
	default:
		return exitFailure
	}
}
