package pandoccmd

import (
	"context"
	"runtime"
	"sort"
	"strings"
)

// Font is an installed font family.
type Font struct {
	Name      string
	Monospace bool
}

const (
	fcListLine     = "fc-list : family"
	atsutilLine    = "atsutil fonts -list | grep -v '^$' | sort -u"
	powershellLine = `powershell -NoProfile -Command "Add-Type -AssemblyName System.Drawing; (New-Object System.Drawing.Text.InstalledFontCollection).Families | ForEach-Object { $_.Name }"`
)

// monospaceHints are lower-case name fragments of fixed-width families.
var monospaceHints = []string{
	"mono", "code", "consol", "courier", "menlo", "monaco", "fixed",
	"terminal", "typewriter", "hack", "inconsolata", "iosevka", "cascadia",
	"lucida console", "andale", "fira code", "source code", "jetbrains",
}

// IsMonospaceName guesses from its name whether a family is fixed-width.
func IsMonospaceName(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range monospaceHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// FontLister enumerates installed font families.
type FontLister struct {
	runner Runner
	goos   string
}

// NewFontLister returns a lister running through r; nil uses the shell.
func NewFontLister(r Runner) *FontLister {
	if r == nil {
		r = ShellRunner{}
	}
	return &FontLister{runner: r, goos: runtime.GOOS}
}

// ListFonts returns installed families sorted case-insensitively. Font
// selection is optional, so every failure yields an empty list.
func (l *FontLister) ListFonts(ctx context.Context) []Font {
	var lines []string
	switch l.goos {
	case "darwin":
		lines = []string{fcListLine, atsutilLine}
	case "windows":
		lines = []string{powershellLine}
	default:
		lines = []string{fcListLine}
	}

	for _, line := range lines {
		stdout, _, err := l.runner.Run(ctx, line)
		if err != nil {
			continue
		}
		names := ParseFontList(stdout)
		fonts := make([]Font, len(names))
		for i, n := range names {
			fonts[i] = Font{Name: n, Monospace: IsMonospaceName(n)}
		}
		return fonts
	}
	return []Font{}
}

// ParseFontList splits font tool output into unique family names.
// Lines may list several comma-separated families; hidden names starting
// with '.' or '#' and single characters are dropped.
func ParseFontList(output string) []string {
	seen := map[string]bool{}
	var names []string
	for _, line := range strings.Split(output, "\n") {
		for _, part := range strings.Split(line, ",") {
			name := strings.TrimSpace(part)
			if len(name) <= 1 || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "#") {
				continue
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}
