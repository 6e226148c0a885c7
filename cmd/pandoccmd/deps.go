package main

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	pandoccmd "github.com/alnah/go-pandoc-cmd"
)

// runDeps manages external tools:
//
//	deps list
//	deps install|reinstall|uninstall DEPENDENCY [--dry-run]
func runDeps(ctx context.Context, args []string, env *Environment) error {
	fs := flag.NewFlagSet("deps", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var common commonFlags
	var dryRun bool
	addCommonFlags(fs, &common)
	fs.BoolVar(&dryRun, "dry-run", false, "print the package manager command without running it")
	fs.Usage = func() { printDepsUsage(env.Stderr) }
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		printDepsUsage(env.Stderr)
		return fmt.Errorf("%w: deps needs a subcommand", ErrUsage)
	}
	if fs.Arg(0) == "list" {
		for _, d := range pandoccmd.Dependencies() {
			kind := "optional"
			switch {
			case d.Required:
				kind = "required"
			case d.Engine:
				kind = "pdf engine"
			}
			fmt.Fprintf(env.Stdout, "%-16s %s\n", d.Name, kind)
		}
		return nil
	}

	action, err := pandoccmd.ParseInstallAction(fs.Arg(0))
	if err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: deps %s needs exactly one dependency", ErrUsage, action)
	}
	dep := fs.Arg(1)

	s, err := newSession(env, common)
	if err != nil {
		return err
	}
	installer := pandoccmd.NewInstaller(env.Streamer, env.GOOS)

	if dryRun {
		line, err := installer.CommandLine(action, dep)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, line)
		return nil
	}

	s.log.WithField("dependency", dep).WithField("action", action).Debug("running package manager")
	err = installer.Run(ctx, action, dep, func(line string) {
		fmt.Fprintln(env.Stdout, line)
	})
	if err != nil {
		return err
	}
	if !common.quiet {
		fmt.Fprintf(env.Stdout, "%s %s: done\n", action, dep)
	}
	return nil
}
