package main

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	pandoccmd "github.com/alnah/go-pandoc-cmd"
)

const themeSampleCode = `// fib returns the n-th Fibonacci number.
func fib(n int) int {
	if n < 2 {
		return n
	}
	return fib(n-1) + fib(n-2)
}`

// runTheme lists highlight themes or previews one.
func runTheme(ctx context.Context, args []string, env *Environment) error {
	fs := flag.NewFlagSet("theme", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var html bool
	fs.BoolVar(&html, "html", false, "print a highlighted HTML sample")
	fs.Usage = func() { printThemeUsage(env.Stderr) }
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		for _, name := range pandoccmd.HighlightThemes() {
			c, err := pandoccmd.ThemePreview(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(env.Stdout, "%s %-12s %s\n", swatch(c.Background), name, c.Style)
		}
		return nil
	}

	name := fs.Arg(0)
	if html {
		sample, err := pandoccmd.RenderThemeSample(ctx, name, themeSampleCode, "go")
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, sample)
		return nil
	}

	c, err := pandoccmd.ThemePreview(name)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, titleStyle.Render(c.Theme)+" (preview style: "+c.Style+")")
	for _, row := range []struct{ label, color string }{
		{"background", c.Background},
		{"foreground", c.Foreground},
		{"keyword", c.Keyword},
		{"string", c.String},
		{"comment", c.Comment},
	} {
		value := row.color
		if value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(env.Stdout, "  %s %-10s %s\n", swatch(row.color), row.label, value)
	}
	return nil
}
