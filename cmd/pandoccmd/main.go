package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "build":
		err = runBuild(ctx, rest, env)
	case "convert":
		err = runConvert(ctx, rest, env)
	case "preset":
		err = runPreset(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "deps":
		err = runDeps(ctx, rest, env)
	case "fonts":
		err = runFonts(ctx, rest, env)
	case "theme":
		err = runTheme(ctx, rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "pandoccmd %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		err = runHelp(rest, env.Stdout)
	default:
		printUsage(env.Stderr)
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	return reportError(env, err)
}

// reportError prints err with its hint and maps it to an exit code.
// --help is not an error.
func reportError(env *Environment, err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(env.Stderr, "interrupted")
		return ExitGeneral
	}
	fmt.Fprintln(env.Stderr, "error:", withHint(err))
	return exitCodeFor(err)
}
