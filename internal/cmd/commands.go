// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aibor/vrootfs"
	"golang.org/x/sync/errgroup"
)

const unlimited = -1

// environment is what a command runs with.
type environment struct {
	fsys  *vrootfs.FS
	flags *flags
	io    IO
}

type runFunc func(ctx context.Context, env *environment, args []string) error

type command struct {
	name    string
	args    string
	help    string
	minArgs int
	maxArgs int
	noFS    bool
	run     runFunc
}

func (c *command) checkArgs(args []string) error {
	if len(args) < c.minArgs || (c.maxArgs != unlimited && len(args) > c.maxArgs) {
		return fmt.Errorf("%w: %d (usage: %s %s)", ErrArgCount, len(args), c.name, c.args)
	}

	return nil
}

var commands = []*command{
	{
		name:    "resolve",
		args:    "path...",
		help:    "print the real paths of virtual paths, primary first",
		minArgs: 1,
		maxArgs: unlimited,
		run:     runResolve,
	},
	{
		name:    "exists",
		args:    "path...",
		help:    "check if virtual paths exist, exit code 1 if any is missing",
		minArgs: 1,
		maxArgs: unlimited,
		run:     runExists,
	},
	{
		name:    "read",
		args:    "path",
		help:    "print the content of a file",
		minArgs: 1,
		maxArgs: 1,
		run:     runRead,
	},
	{
		name:    "write",
		args:    "path",
		help:    "write stdin to a file, creating missing parent directories",
		minArgs: 1,
		maxArgs: 1,
		run:     runWrite,
	},
	{
		name:    "mkdir",
		args:    "path...",
		help:    "create directories along with missing parents",
		minArgs: 1,
		maxArgs: unlimited,
		run:     runMkdir,
	},
	{
		name:    "clear",
		args:    "path...",
		help:    "remove everything inside of directories",
		minArgs: 1,
		maxArgs: unlimited,
		run:     runClear,
	},
	{
		name:    "parent",
		args:    "path...",
		help:    "print the parent of virtual paths",
		minArgs: 1,
		maxArgs: unlimited,
		noFS:    true,
		run:     runParent,
	},
	{
		name: "roots",
		help: "print the configured roots with their directories",
		run:  runRoots,
	},
	{
		name:    "export",
		args:    "path",
		help:    "write a directory as newc CPIO archive (see -output)",
		minArgs: 1,
		maxArgs: 1,
		run:     runExport,
	},
}

func lookupCommand(name string) (*command, error) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

func commandsUsage() string {
	var builder strings.Builder

	for _, cmd := range commands {
		fmt.Fprintf(&builder, "    %-8s %-8s %s\n", cmd.name, cmd.args, cmd.help)
	}

	return builder.String()
}

// batch runs the given function for all paths with at most jobs in
// parallel. The first error cancels the context of the remaining ones and is
// returned.
func batch(
	ctx context.Context,
	jobs uint64,
	paths []string,
	fn func(ctx context.Context, idx int, path string) error,
) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(int(jobs))

	for idx, path := range paths {
		group.Go(func() error {
			return fn(ctx, idx, path)
		})
	}

	return group.Wait() //nolint:wrapcheck
}

func runResolve(_ context.Context, env *environment, args []string) error {
	for _, arg := range args {
		paths, err := env.fsys.AllAbsPaths(arg)
		if err != nil {
			return err //nolint:wrapcheck
		}

		for _, path := range paths {
			fmt.Fprintln(env.io.Stdout, path)
		}
	}

	return nil
}

func runExists(ctx context.Context, env *environment, args []string) error {
	results := make([]bool, len(args))

	err := batch(ctx, env.flags.jobs, args,
		func(_ context.Context, idx int, path string) error {
			exists, err := env.fsys.Exists(path)
			results[idx] = exists

			return err //nolint:wrapcheck
		},
	)
	if err != nil {
		return err
	}

	missing := 0

	for idx, exists := range results {
		fmt.Fprintf(env.io.Stdout, "%t\t%s\n", exists, args[idx])

		if !exists {
			missing++
		}
	}

	if missing > 0 {
		return fmt.Errorf("%w: %d of %d", ErrMissing, missing, len(args))
	}

	return nil
}

func runRead(_ context.Context, env *environment, args []string) error {
	text, err := env.fsys.ReadString(args[0], env.flags.encoding)
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = io.WriteString(env.io.Stdout, text)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

func runWrite(ctx context.Context, env *environment, args []string) error {
	text, err := io.ReadAll(env.io.Stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	return env.fsys.WriteString(ctx, args[0], string(text), env.flags.encoding) //nolint:wrapcheck
}

func runMkdir(ctx context.Context, env *environment, args []string) error {
	return batch(ctx, env.flags.jobs, args,
		func(ctx context.Context, _ int, path string) error {
			return env.fsys.MkdirAll(ctx, path) //nolint:wrapcheck
		},
	)
}

func runClear(ctx context.Context, env *environment, args []string) error {
	return batch(ctx, env.flags.jobs, args,
		func(ctx context.Context, _ int, path string) error {
			return env.fsys.Clear(ctx, path) //nolint:wrapcheck
		},
	)
}

func runParent(_ context.Context, env *environment, args []string) error {
	for _, arg := range args {
		fmt.Fprintln(env.io.Stdout, vrootfs.Parent(arg))
	}

	return nil
}

func runRoots(_ context.Context, env *environment, _ []string) error {
	for _, root := range env.fsys.Roots() {
		prefixes, _ := env.fsys.Prefixes(root)
		fmt.Fprintf(env.io.Stdout, "%s\t%s\n", root, strings.Join(prefixes, "\t"))
	}

	return nil
}

func runExport(ctx context.Context, env *environment, args []string) error {
	if env.flags.output == stdoutName {
		return env.fsys.WriteArchive(ctx, args[0], env.io.Stdout) //nolint:wrapcheck
	}

	file, err := os.Create(env.flags.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	err = env.fsys.WriteArchive(ctx, args[0], file)
	if err != nil {
		_ = file.Close()
		removeOutput(file.Name())

		return err //nolint:wrapcheck
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	slog.Debug("Archive written", slog.String("path", file.Name()))

	return nil
}

func removeOutput(path string) {
	slog.Debug("Removing incomplete archive", slog.String("path", path))

	err := os.Remove(path)
	if err != nil {
		slog.Error(
			"Failed to remove incomplete archive",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}
