package main

import (
	"context"
	"encoding/json"
	"fmt"

	flag "github.com/spf13/pflag"

	pandoccmd "github.com/alnah/go-pandoc-cmd"
)

// runFonts lists installed font families for --main-font and --mono-font.
func runFonts(ctx context.Context, args []string, env *Environment) error {
	fs := flag.NewFlagSet("fonts", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var mono, jsonOutput bool
	fs.BoolVar(&mono, "mono", false, "only monospace families")
	fs.BoolVar(&jsonOutput, "json", false, "print as JSON")
	fs.Usage = func() { printFontsUsage(env.Stderr) }
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	fonts := pandoccmd.NewFontLister(env.Runner).ListFonts(ctx)
	if mono {
		filtered := fonts[:0]
		for _, f := range fonts {
			if f.Monospace {
				filtered = append(filtered, f)
			}
		}
		fonts = filtered
	}

	if jsonOutput {
		type fontJSON struct {
			Name      string `json:"name"`
			Monospace bool   `json:"monospace"`
		}
		out := make([]fontJSON, len(fonts))
		for i, f := range fonts {
			out[i] = fontJSON{Name: f.Name, Monospace: f.Monospace}
		}
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, f := range fonts {
		fmt.Fprintln(env.Stdout, f.Name)
	}
	return nil
}
