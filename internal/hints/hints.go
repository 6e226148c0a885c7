// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"runtime"
	"strings"
)

// GOOS is the platform used to pick install commands. Tests override it.
var GOOS = runtime.GOOS

// ForPandocMissing returns an install hint for pandoc itself.
func ForPandocMissing() string {
	switch GOOS {
	case "darwin":
		return format("install pandoc with `brew install pandoc` or run `pandoccmd deps install pandoc`")
	case "windows":
		return format("install pandoc with `winget install JohnMacFarlane.Pandoc`")
	default:
		return format("install pandoc from your package manager or https://pandoc.org/installing.html")
	}
}

// ForEngineMissing suggests how to get the PDF engine the command asked for.
func ForEngineMissing(engine string) string {
	if engine == "tectonic" {
		return format("run `pandoccmd deps install tectonic` or pick --pdf-engine xelatex")
	}
	return format("install a TeX distribution (TeX Live, MacTeX, MiKTeX) or use --pdf-engine tectonic")
}

// ForFilterMissing suggests installing a pandoc filter.
func ForFilterMissing(filter string) string {
	return format("run `pandoccmd deps install " + filter + "`")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-pandoc-cmd") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForPresetNotFound lists the presets that do exist.
func ForPresetNotFound(available []string) string {
	if len(available) == 0 {
		return format("no presets saved yet; create one with `pandoccmd preset save NAME`")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForNoInput reminds the user that convert needs a source document.
func ForNoInput() string {
	return format("pass a Markdown file: pandoccmd convert notes.md")
}

// ForTimeout returns a hint about increasing timeout for slow conversions.
func ForTimeout() string {
	return format("large documents and first-run TeX package downloads take time; use --timeout")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
