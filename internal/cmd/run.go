// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"

	"github.com/aibor/vrootfs"
	"github.com/aibor/vrootfs/internal/config"
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ErrConfigFile is returned if the config file can not be read.
var ErrConfigFile = errors.New("config file")

func readConfigRoots(flags *flags) (any, error) {
	path, err := filepath.Abs(flags.configFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFile, err)
	}

	file, err := config.Read(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		// Only the default file is optional.
		if errors.Is(err, fs.ErrNotExist) && flags.configFileIsDefault() {
			slog.Debug("No config file", slog.String("path", path))
			return nil, nil
		}

		return nil, fmt.Errorf("%w %s: %w", ErrConfigFile, path, err)
	}

	slog.Debug("Config file read", slog.String("path", path))

	return file.Roots, nil
}

// mergeRoots returns the roots of the config file with the ones given by
// flag added. Roots given by flag replace the ones of the same name.
//
// Malformed config roots are returned as they are, so they are reported.
func mergeRoots(configRoots any, flagRoots RootsValue) any {
	if len(flagRoots) == 0 {
		return configRoots
	}

	merged := make(map[string]any)

	if configRoots != nil {
		defs, ok := configRoots.(map[string]any)
		if !ok {
			return configRoots
		}

		maps.Copy(merged, defs)
	}

	for name, dirs := range flagRoots {
		merged[name] = dirs
	}

	return merged
}

func newFS(flags *flags) (*vrootfs.FS, error) {
	configRoots, err := readConfigRoots(flags)
	if err != nil {
		return nil, err
	}

	fsys, err := vrootfs.New(vrootfs.Config{
		Roots: mergeRoots(configRoots, flags.roots),
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return fsys, nil
}

func run(ctx context.Context, flags *flags, cfg IO) error {
	env := &environment{
		flags: flags,
		io:    cfg,
	}

	if !flags.command.noFS {
		fsys, err := newFS(flags)
		if err != nil {
			return err
		}

		env.fsys = fsys
	}

	slog.Debug("Run command",
		slog.String("command", flags.command.name),
		slog.Any("args", flags.args),
	)

	return flags.command.run(ctx, env, flags.args)
}

func handleParseArgsError(err error, output io.Writer) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		printError(output, err)
	}

	return exitUsage
}

func handleRunError(err error, output io.Writer) int {
	// The exists command reported its results already.
	if !errors.Is(err, ErrMissing) {
		printError(output, err)
	}

	return exitCodeFor(err)
}

func printError(output io.Writer, err error) {
	fmt.Fprintf(output, "Error [%s]: %v\n", name, err)
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	flags := newFlags(cfg.Stderr)

	err := flags.ParseArgs(MergedArgs(args))
	if err != nil {
		return handleParseArgsError(err, cfg.Stderr)
	}

	setupLogging(cfg.Stderr, flags.debug)

	err = run(ctx, flags, cfg)
	if err != nil {
		return handleRunError(err, cfg.Stderr)
	}

	return 0
}
