package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docmark/internal/fileutil"
)

// commandNames lists the CLI commands.
var commandNames = []string{"build", "doctor", "version", "help", "completion"}

// runMain runs the CLI and returns the process exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := run(ctx, args[1:], env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// run dispatches to a command. A first argument that is not a command but
// looks like a source file or flag starts a build.
func run(ctx context.Context, args []string, env *Environment) error {
	warnUnknownEnvVars(env.Stderr, env.Environ())

	if len(args) == 0 {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	cmd := args[0]
	if !isCommand(cmd) {
		if cmd == "-h" || cmd == "--help" {
			return runHelp(nil, env)
		}
		if looksLikeMarkdown(cmd) || isFlag(cmd) {
			return runBuildCmd(ctx, args, env)
		}
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command: %s", ErrUsage, cmd)
	}

	switch cmd {
	case "build":
		return runBuildCmd(ctx, args[1:], env)
	case "doctor":
		return runDoctorCmd(args[1:], env)
	case "version":
		fmt.Fprintf(env.Stdout, "docmark %s\n", Version)
		return nil
	case "help":
		return runHelp(args[1:], env)
	default: // completion
		return runCompletion(args[1:], env)
	}
}

// isCommand reports whether name is a CLI command.
func isCommand(name string) bool {
	for _, c := range commandNames {
		if c == name {
			return true
		}
	}
	return false
}

// looksLikeMarkdown reports whether arg names a markdown source file.
func looksLikeMarkdown(arg string) bool {
	return fileutil.HasExtension(arg, sourceExtensions)
}

func isFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

// isHelpRequest reports whether a flag parse error is a -h/--help request.
func isHelpRequest(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
