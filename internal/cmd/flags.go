// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/aibor/vrootfs"
)

// Set on build.
var version = "dev"

const (
	name = "vrootfs"

	localConfigFile = ".vrootfs.yaml"
	stdoutName      = "-"

	jobsDefault = 4
	jobsMin     = 1
	jobsMax     = 64

	usageMessage = `Usage of 'vrootfs':
    vrootfs [flags...] command [args...]

Commands:
%s
Roots are read from the YAML file given with -config, which defaults to
./.vrootfs.yaml if present:

	roots:
	  src: ./src
	  assets: [./assets, /usr/share/app/assets]

Roots may also be given with -root, replacing the ones of the file:
	vrootfs -root src=./src -root assets=./assets,/usr/share/app/assets \
		read src/main.go

All vrootfs flags can also be provided via environment variable VROOTFS_ARGS:
	VROOTFS_ARGS="-config /etc/app/vrootfs.yaml -debug" vrootfs roots

Flags:
`
)

type flags struct {
	flagSet *flag.FlagSet

	configFile string
	roots      RootsValue
	encoding   string
	output     string
	jobs       uint64
	version    bool
	debug      bool

	command *command
	args    []string
}

func newFlags(output io.Writer) *flags {
	flags := &flags{
		configFile: localConfigFile,
		encoding:   vrootfs.DefaultEncoding,
		output:     stdoutName,
		jobs:       jobsDefault,
	}

	flags.initFlagset(output)

	return flags
}

func (f *flags) initFlagset(output io.Writer) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), usageMessage, commandsUsage())
		fs.PrintDefaults()
	}

	fs.StringVar(
		&f.configFile,
		"config",
		f.configFile,
		"YAML file to read roots from. The default file is optional.",
	)

	fs.Var(
		&f.roots,
		"root",
		"root definition `name=path[,path...]`. Flag may be used more than once.",
	)

	fs.StringVar(
		&f.encoding,
		"encoding",
		f.encoding,
		"text encoding used by read and write (WHATWG label)",
	)

	fs.StringVar(
		&f.output,
		"output",
		f.output,
		"file to write the export archive to, \"-\" for stdout",
	)

	fs.Var(
		&LimitedUintValue{
			Value: &f.jobs,
			Lower: jobsMin,
			Upper: jobsMax,
		},
		"jobs",
		fmt.Sprintf("number of paths handled in parallel (%d-%d)", jobsMin, jobsMax),
	)

	fs.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)

	fs.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = fs
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "%s: %s\n\n", name, version)
	fmt.Fprintln(f.flagSet.Output(), buildInfo.String())

	return ErrHelp
}

// configFileIsDefault reports whether the config file is the optional
// default one.
func (f *flags) configFileIsDefault() bool {
	return f.configFile == localConfigFile
}

func (f *flags) ParseArgs(args []string) error {
	// Parses arguments up to the first one that is not prefixed with a "-" or
	// is "--".
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	positionalArgs := f.flagSet.Args()

	// First positional argument is the command, the rest are its arguments.
	if len(positionalArgs) < 1 {
		return f.fail("no command given", ErrNoCommand)
	}

	cmd, err := lookupCommand(positionalArgs[0])
	if err != nil {
		return f.fail("command", err)
	}

	err = cmd.checkArgs(positionalArgs[1:])
	if err != nil {
		return f.fail(cmd.name, err)
	}

	f.command = cmd
	f.args = positionalArgs[1:]

	return nil
}
