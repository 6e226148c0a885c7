package main

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	flag "github.com/spf13/pflag"

	pandoccmd "github.com/alnah/go-pandoc-cmd"
	"github.com/alnah/go-pandoc-cmd/internal/hints"
)

// convertFlags holds flags for the convert command.
type convertFlags struct {
	common  commonFlags
	preset  string
	open    bool
	timeout string
}

func parseConvertFlags(args []string, env *Environment) (*convertFlags, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &convertFlags{}

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.preset, "preset", "P", "", "apply a saved preset before flags")
	fs.BoolVar(&f.open, "open", false, "open the output with the default application")
	fs.StringVar(&f.timeout, "timeout", "", "conversion timeout (e.g. 90s, 5m)")
	addSettingFlags(fs)
	fs.Usage = func() { printConvertUsage(env.Stderr) }

	if err := parseFlags(fs, args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() == 0 {
		return nil, nil, pandoccmd.ErrNoInput
	}
	if fs.NArg() > 1 {
		return nil, nil, fmt.Errorf("%w: convert takes one input, got %d", ErrUsage, fs.NArg())
	}
	return f, fs, nil
}

// runConvert builds the command for one input and runs it.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	f, fs, err := parseConvertFlags(args, env)
	if err != nil {
		return err
	}

	s, err := newSession(env, f.common)
	if err != nil {
		return err
	}
	timeout, err := s.timeout(f.timeout)
	if err != nil {
		return err
	}

	snap, err := s.snapshot(f.preset, fs.Arg(0), changedSettings(fs))
	if err != nil {
		return err
	}

	warnMissingTools(ctx, s, snap)

	executor := pandoccmd.NewExecutor(
		pandoccmd.WithRunner(env.Runner),
		pandoccmd.WithTimeout(timeout),
	)

	stop := startSpinner(env, f.common.quiet, "Converting "+snap.InputPath)
	res, err := executor.Convert(ctx, snap)
	stop()
	if err != nil {
		return err
	}

	s.log.WithField("line", res.Line).Debug("pandoc finished")
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s (%s)\n", res.OutputPath, res.Duration.Round(time.Millisecond))
	}

	if f.open {
		return env.OpenFile(res.OutputPath)
	}
	return nil
}

// warnMissingTools probes the toolchain and warns about anything the
// command needs but cannot find. It never blocks the conversion: pandoc
// itself reports the definitive error.
func warnMissingTools(ctx context.Context, s *session, snap pandoccmd.Snapshot) {
	report := pandoccmd.NewProber(s.env.Runner).Probe(ctx)

	if !report.PandocAvailable() {
		s.log.Warn("pandoc not found" + hints.ForPandocMissing())
	}
	missing := func(name string) bool {
		st, ok := report.Status(name)
		return ok && !st.Available
	}
	if snap.WritesPDF() && missing(snap.PDFEngine) {
		s.log.Warnf("PDF engine %s not found%s", snap.PDFEngine, hints.ForEngineMissing(snap.PDFEngine))
	}
	if pandoccmd.DetectMermaid(snap.SourceText) && missing(pandoccmd.DepMermaidFilter) {
		s.log.Warn("mermaid-filter not found" + hints.ForFilterMissing(pandoccmd.DepMermaidFilter))
	}
	if snap.Crossref && missing(pandoccmd.DepPandocCrossref) {
		s.log.Warn("pandoc-crossref not found" + hints.ForFilterMissing(pandoccmd.DepPandocCrossref))
	}
}

// startSpinner shows progress on an interactive stderr and returns the
// function that stops it.
func startSpinner(env *Environment, quiet bool, msg string) func() {
	if quiet || !env.IsTerminal(env.Stderr) {
		return func() {}
	}
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Writer = env.Stderr
	sp.Suffix = " " + msg
	sp.Start()
	return sp.Stop
}
