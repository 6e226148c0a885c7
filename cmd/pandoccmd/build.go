package main

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	pandoccmd "github.com/alnah/go-pandoc-cmd"
)

// buildFlags holds flags for the build command.
type buildFlags struct {
	common  commonFlags
	preset  string
	oneLine bool
	copy    bool
}

func parseBuildFlags(args []string, env *Environment) (*buildFlags, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &buildFlags{}

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.preset, "preset", "P", "", "apply a saved preset before flags")
	fs.BoolVar(&f.oneLine, "one-line", false, "print the executable single-line form")
	fs.BoolVar(&f.copy, "copy", false, "copy the command line to the clipboard")
	addSettingFlags(fs)
	fs.Usage = func() { printBuildUsage(env.Stderr) }

	if err := parseFlags(fs, args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 1 {
		return nil, nil, fmt.Errorf("%w: build takes at most one input, got %d", ErrUsage, fs.NArg())
	}
	return f, fs, nil
}

// runBuild prints the pandoc command for the layered settings. It never
// runs anything and works without pandoc installed.
func runBuild(_ context.Context, args []string, env *Environment) error {
	f, fs, err := parseBuildFlags(args, env)
	if err != nil {
		return err
	}

	s, err := newSession(env, f.common)
	if err != nil {
		return err
	}

	snap, err := s.snapshot(f.preset, fs.Arg(0), changedSettings(fs))
	if err != nil {
		return err
	}
	cmd := pandoccmd.Build(snap)
	s.log.WithField("tokens", len(cmd.Tokens)).Debug("command built")

	if f.oneLine {
		fmt.Fprintln(env.Stdout, cmd.Line())
	} else {
		fmt.Fprintln(env.Stdout, cmd.Preview())
	}

	if f.copy {
		if err := env.CopyToClipboard(cmd.Line()); err != nil {
			s.log.WithError(err).Warn("could not copy command to clipboard")
		} else {
			s.log.Info("command copied to clipboard")
		}
	}
	return nil
}
