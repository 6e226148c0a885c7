package main

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	pandoccmd "github.com/alnah/go-pandoc-cmd"
	"github.com/alnah/go-pandoc-cmd/internal/yamlutil"
)

// presetFlags holds flags for the preset command.
type presetFlags struct {
	common  commonFlags
	base    string
	oneLine bool
}

// newPresetFlagSet returns the flag set for one preset subcommand. Setting
// flags are only accepted by save and load.
func newPresetFlagSet(sub string, env *Environment) (*flag.FlagSet, *presetFlags, error) {
	fs := flag.NewFlagSet("preset "+sub, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &presetFlags{}
	addCommonFlags(fs, &f.common)
	switch sub {
	case "save":
		fs.StringVar(&f.base, "base", "", "start from another preset")
		addSettingFlags(fs)
	case "load":
		fs.BoolVar(&f.oneLine, "one-line", false, "print the executable single-line form")
		addSettingFlags(fs)
	case "show", "delete", "list":
	default:
		return nil, nil, fmt.Errorf("%w: preset %q", ErrUnknownCommand, sub)
	}
	fs.Usage = func() { printPresetUsage(env.Stderr) }
	return fs, f, nil
}

// runPreset dispatches preset subcommands:
//
//	save NAME [--base PRESET] [setting flags]
//	load NAME [input] [setting flags]
//	show NAME
//	delete NAME
//	list
func runPreset(_ context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		printPresetUsage(env.Stderr)
		return fmt.Errorf("%w: preset needs a subcommand", ErrUsage)
	}
	sub, rest := args[0], args[1:]

	fs, f, err := newPresetFlagSet(sub, env)
	if err != nil {
		printPresetUsage(env.Stderr)
		return err
	}
	if err := parseFlags(fs, rest); err != nil {
		return err
	}

	s, err := newSession(env, f.common)
	if err != nil {
		return err
	}

	if sub == "list" {
		return presetList(s)
	}

	if fs.NArg() == 0 {
		return fmt.Errorf("%w: preset %s needs a NAME", ErrUsage, sub)
	}
	name := fs.Arg(0)

	switch sub {
	case "save":
		return presetSave(s, name, f.base, changedSettings(fs))
	case "load":
		return presetLoad(s, name, fs.Arg(1), f.oneLine, changedSettings(fs))
	case "show":
		return presetShow(s, name)
	default:
		return presetDelete(s, name)
	}
}

func presetSave(s *session, name, base string, flagValues pandoccmd.Values) error {
	snap, err := s.snapshot(base, "", flagValues)
	if err != nil {
		return err
	}

	store, closeStore, err := s.presets()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Save(name, snap); err != nil {
		return err
	}
	s.log.WithField("preset", name).Debug("preset saved")
	fmt.Fprintf(s.env.Stdout, "Saved preset %q\n", name)
	return nil
}

func presetLoad(s *session, name, input string, oneLine bool, flagValues pandoccmd.Values) error {
	snap, err := s.snapshot(name, input, flagValues)
	if err != nil {
		return err
	}
	cmd := pandoccmd.Build(snap)
	if oneLine {
		fmt.Fprintln(s.env.Stdout, cmd.Line())
	} else {
		fmt.Fprintln(s.env.Stdout, cmd.Preview())
	}
	return nil
}

// presetShow prints the stored values as YAML, usable as a config
// file's defaults block.
func presetShow(s *session, name string) error {
	values, err := s.loadPreset(name)
	if err != nil {
		return err
	}

	if err := yamlutil.Encode(s.env.Stdout, map[string]any{"defaults": map[string]any(values)}); err != nil {
		return fmt.Errorf("encoding preset %q: %w", name, err)
	}
	return nil
}

func presetDelete(s *session, name string) error {
	store, closeStore, err := s.presets()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Delete(name); err != nil {
		return err
	}
	fmt.Fprintf(s.env.Stdout, "Deleted preset %q\n", name)
	return nil
}

func presetList(s *session) error {
	store, closeStore, err := s.presets()
	if err != nil {
		return err
	}
	defer closeStore()

	names, err := store.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(s.env.Stdout, name)
	}
	return nil
}
