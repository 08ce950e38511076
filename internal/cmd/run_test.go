// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aibor/vrootfs/internal/cmd"
	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type result struct {
	exitCode int
	stdout   string
	stderr   string
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer

	exitCode := cmd.Run(t.Context(), args, cmd.IO{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	})

	return result{exitCode, stdout.String(), stderr.String()}
}

type testDirs struct {
	primary  string
	fallback string
	dst      string
	config   string
}

func setup(t *testing.T) testDirs {
	t.Helper()

	t.Setenv("VROOTFS_ARGS", "")

	base := t.TempDir()
	dirs := testDirs{
		primary:  filepath.Join(base, "primary"),
		fallback: filepath.Join(base, "fallback"),
		dst:      filepath.Join(base, "dst"),
		config:   filepath.Join(base, "vrootfs.yaml"),
	}

	files := map[string]string{
		filepath.Join(dirs.primary, "a.txt"):         "primary a",
		filepath.Join(dirs.fallback, "a.txt"):        "fallback a",
		filepath.Join(dirs.fallback, "sub", "b.txt"): "fallback b",
		filepath.Join(dirs.dst, "old", "c.txt"):      "old",
	}

	for path, content := range files {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	t.Setenv("TEST_BASE", base)

	config := "roots:\n" +
		"  src: [${TEST_BASE}/primary, ${TEST_BASE}/fallback]\n" +
		"  dst: ${TEST_BASE}/dst\n"
	require.NoError(t, os.WriteFile(dirs.config, []byte(config), 0o644))

	return dirs
}

func TestRun(t *testing.T) {
	dirs := setup(t)

	t.Run("roots", func(t *testing.T) {
		res := run(t, "", "-config", dirs.config, "roots")
		require.Equal(t, 0, res.exitCode, res.stderr)

		expected := "dst\t" + dirs.dst + "\n" +
			"src\t" + dirs.primary + "\t" + dirs.fallback + "\n"
		assert.Equal(t, expected, res.stdout)
	})

	t.Run("resolve", func(t *testing.T) {
		res := run(t, "", "-config", dirs.config, "resolve", "src/x/../y", "dst")
		require.Equal(t, 0, res.exitCode, res.stderr)

		expected := filepath.Join(dirs.primary, "y") + "\n" +
			filepath.Join(dirs.fallback, "y") + "\n" +
			dirs.dst + "\n"
		assert.Equal(t, expected, res.stdout)
	})

	t.Run("exists", func(t *testing.T) {
		res := run(t, "", "-config", dirs.config, "exists", "src/a.txt", "src/sub/b.txt")
		require.Equal(t, 0, res.exitCode, res.stderr)
		assert.Equal(t, "true\tsrc/a.txt\ntrue\tsrc/sub/b.txt\n", res.stdout)
	})

	t.Run("exists missing", func(t *testing.T) {
		res := run(t, "", "-config", dirs.config, "-jobs", "1", "exists", "src/a.txt", "src/nope")
		assert.Equal(t, 1, res.exitCode)
		assert.Equal(t, "true\tsrc/a.txt\nfalse\tsrc/nope\n", res.stdout)
		assert.Empty(t, res.stderr)
	})

	t.Run("read", func(t *testing.T) {
		res := run(t, "", "-config", dirs.config, "read", "src/a.txt")
		require.Equal(t, 0, res.exitCode, res.stderr)
		assert.Equal(t, "primary a", res.stdout)

		res = run(t, "", "-config", dirs.config, "read", "src/sub/b.txt")
		require.Equal(t, 0, res.exitCode, res.stderr)
		assert.Equal(t, "fallback b", res.stdout)
	})

	t.Run("write", func(t *testing.T) {
		res := run(t, "new content", "-config", dirs.config, "write", "dst/x/y/z.txt")
		require.Equal(t, 0, res.exitCode, res.stderr)

		content, err := os.ReadFile(filepath.Join(dirs.dst, "x", "y", "z.txt"))
		require.NoError(t, err)
		assert.Equal(t, "new content", string(content))
	})

	t.Run("mkdir", func(t *testing.T) {
		res := run(t, "", "-config", dirs.config, "mkdir", "dst/m/n", "dst/o")
		require.Equal(t, 0, res.exitCode, res.stderr)
		assert.DirExists(t, filepath.Join(dirs.dst, "m", "n"))
		assert.DirExists(t, filepath.Join(dirs.dst, "o"))
	})

	t.Run("parent", func(t *testing.T) {
		res := run(t, "", "parent", "src/a/b.txt", "src")
		require.Equal(t, 0, res.exitCode, res.stderr)
		assert.Equal(t, "src/a\nsrc\n", res.stdout)
	})

	t.Run("export", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "src.cpio")

		res := run(t, "", "-config", dirs.config, "-output", output, "export", "src")
		require.Equal(t, 0, res.exitCode, res.stderr)

		file, err := os.Open(output)
		require.NoError(t, err)

		defer file.Close()

		var names []string

		reader := cpio.NewReader(file)

		for {
			hdr, err := reader.Next()
			if errors.Is(err, io.EOF) {
				break
			}

			require.NoError(t, err)

			names = append(names, hdr.Name)
		}

		assert.Equal(t, []string{"a.txt", "sub", "sub/b.txt"}, names)
	})

	t.Run("clear", func(t *testing.T) {
		res := run(t, "", "-config", dirs.config, "clear", "dst")
		require.Equal(t, 0, res.exitCode, res.stderr)

		entries, err := os.ReadDir(dirs.dst)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestRun_RootFlags(t *testing.T) {
	dirs := setup(t)

	res := run(t, "",
		"-config", dirs.config,
		"-root", "src="+dirs.fallback,
		"-root", "extra="+dirs.primary,
		"read", "src/a.txt",
	)
	require.Equal(t, 0, res.exitCode, res.stderr)
	assert.Equal(t, "fallback a", res.stdout)

	res = run(t, "", "-root", "src="+dirs.primary, "roots")
	require.Equal(t, 0, res.exitCode, res.stderr)
	assert.Equal(t, "src\t"+dirs.primary+"\n", res.stdout)
}

func TestRun_EnvArgs(t *testing.T) {
	dirs := setup(t)

	t.Setenv("VROOTFS_ARGS", "-config "+dirs.config)

	res := run(t, "", "read", "src/a.txt")
	require.Equal(t, 0, res.exitCode, res.stderr)
	assert.Equal(t, "primary a", res.stdout)
}

func TestRun_Errors(t *testing.T) {
	dirs := setup(t)

	listConfig := filepath.Join(t.TempDir(), "list.yaml")
	require.NoError(t, os.WriteFile(listConfig, []byte("roots: [/tmp]\n"), 0o644))

	tests := []struct {
		name             string
		args             []string
		expectedExitCode int
		expectedStderr   string
	}{
		{
			name:             "no command",
			args:             []string{},
			expectedExitCode: 64,
			expectedStderr:   "no command given",
		},
		{
			name:             "unknown command",
			args:             []string{"frobnicate"},
			expectedExitCode: 64,
			expectedStderr:   "unknown command: frobnicate",
		},
		{
			name:             "missing config file",
			args:             []string{"-config", dirs.config + ".missing", "roots"},
			expectedExitCode: 78,
			expectedStderr:   "config file",
		},
		{
			name:             "no roots",
			args:             []string{"roots"},
			expectedExitCode: 78,
			expectedStderr:   "[vrootfs::missing-argument]",
		},
		{
			name:             "list roots",
			args:             []string{"-config", listConfig, "roots"},
			expectedExitCode: 78,
			expectedStderr:   "[vrootfs::missing-argument]",
		},
		{
			name:             "missing root directory",
			args:             []string{"-root", "src=" + dirs.primary + "/nope", "roots"},
			expectedExitCode: 78,
			expectedStderr:   "[vrootfs::directory-not-found]",
		},
		{
			name:             "unknown root",
			args:             []string{"-config", dirs.config, "read", "nope/a.txt"},
			expectedExitCode: 65,
			expectedStderr:   "[vrootfs::unknown-root]",
		},
		{
			name:             "out of bounds",
			args:             []string{"-config", dirs.config, "mkdir", "dst/../../x"},
			expectedExitCode: 65,
			expectedStderr:   "[vrootfs::out-of-bounds]",
		},
		{
			name:             "file not found",
			args:             []string{"-config", dirs.config, "read", "src/nope.txt"},
			expectedExitCode: 66,
			expectedStderr:   "[vrootfs::file-not-found]",
		},
		{
			name:             "clear file",
			args:             []string{"-config", dirs.config, "clear", "src/a.txt"},
			expectedExitCode: 74,
			expectedStderr:   "[vrootfs::io]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", tt.args...)
			assert.Equal(t, tt.expectedExitCode, res.exitCode)
			assert.Contains(t, res.stderr, tt.expectedStderr)
		})
	}
}
