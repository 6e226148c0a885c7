package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pandoccmd <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Print the pandoc command for the given settings")
	fmt.Fprintln(w, "  convert    Build the command and run it")
	fmt.Fprintln(w, "  preset     Save, load, show, delete or list presets")
	fmt.Fprintln(w, "  doctor     Check pandoc, PDF engines, filters and the preset store")
	fmt.Fprintln(w, "  deps       Install, reinstall or uninstall dependencies")
	fmt.Fprintln(w, "  fonts      List installed font families")
	fmt.Fprintln(w, "  theme      List or preview syntax highlighting themes")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pandoccmd help <command>' for details on a specific command.")
}

// printCommonFlags prints the flags every settings-aware command accepts.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
	fmt.Fprintln(w)
}

// printSettingFlags prints every setting flag from the settings table.
func printSettingFlags(w io.Writer) {
	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	addSettingFlags(fs)
	fmt.Fprintln(w, "Settings (only flags you pass override presets and config):")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tokens: {today} {year} {file} {user} in title, author, date and zones;")
	fmt.Fprintln(w, "        {page} {pages} {chapter} {section} in header/footer zones only.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pandoccmd build [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the pandoc command for the layered settings:")
	fmt.Fprintln(w, "defaults < config < environment < preset < flags.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -P, --preset <name>       Apply a saved preset")
	fmt.Fprintln(w, "      --one-line            Single executable line instead of the preview")
	fmt.Fprintln(w, "      --copy                Copy the command line to the clipboard")
	fmt.Fprintln(w)
	printCommonFlags(w)
	printSettingFlags(w)
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pandoccmd convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build the pandoc command and run it. One conversion runs at a time.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run:")
	fmt.Fprintln(w, "  -P, --preset <name>       Apply a saved preset")
	fmt.Fprintln(w, "      --open                Open the output when done")
	fmt.Fprintln(w, "      --timeout <dur>       Conversion timeout (default 5m)")
	fmt.Fprintln(w)
	printCommonFlags(w)
	printSettingFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PANDOCCMD_CONFIG          Config file name or path")
	fmt.Fprintln(w, "  PANDOCCMD_OUTPUT_DIR      Default output directory")
	fmt.Fprintln(w, "  PANDOCCMD_TIMEOUT         Conversion timeout")
}

// printPresetUsage prints usage for the preset command.
func printPresetUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pandoccmd preset <subcommand> [NAME] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  save NAME [--base P]      Save current settings (flags over config) as NAME")
	fmt.Fprintln(w, "  load NAME [input]         Print the command built from NAME")
	fmt.Fprintln(w, "  show NAME                 Print NAME as a config defaults block")
	fmt.Fprintln(w, "  delete NAME               Remove NAME")
	fmt.Fprintln(w, "  list                      List preset names")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PANDOCCMD_PRESET_STORE    Backend: file (default) or sqlite")
	fmt.Fprintln(w, "  PANDOCCMD_PRESET_PATH     Store location")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pandoccmd doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check pandoc, PDF engines, filters, Chromium and the preset store.")
	fmt.Fprintln(w, "Missing tools are warnings: commands can still be built.")
}

// printDepsUsage prints usage for the deps command.
func printDepsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pandoccmd deps <list|install|reinstall|uninstall> [dependency] [--dry-run]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Uses brew on macOS, apt-get on Linux, winget on Windows and npm for mermaid-filter.")
	fmt.Fprintln(w, "Ctrl-C stops the package manager; partial changes are not rolled back.")
}

// printFontsUsage prints usage for the fonts command.
func printFontsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pandoccmd fonts [--mono] [--json]")
}

// printThemeUsage prints usage for the theme command.
func printThemeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pandoccmd theme [name] [--html]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a name, list themes. Colors come from the closest chroma style.")
}

// runHelp prints help for a command.
func runHelp(args []string, w io.Writer) error {
	if len(args) == 0 {
		printUsage(w)
		return nil
	}

	switch strings.ToLower(args[0]) {
	case "build":
		printBuildUsage(w)
	case "convert":
		printConvertUsage(w)
	case "preset":
		printPresetUsage(w)
	case "doctor":
		printDoctorUsage(w)
	case "deps":
		printDepsUsage(w)
	case "fonts":
		printFontsUsage(w)
	case "theme":
		printThemeUsage(w)
	case "version", "help":
		printUsage(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	return nil
}
