package pandoccmd

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// Dependency names.
const (
	DepPandoc         = "pandoc"
	DepTectonic       = "tectonic"
	DepXeLaTeX        = "xelatex"
	DepLuaLaTeX       = "lualatex"
	DepPDFLaTeX       = "pdflatex"
	DepMermaidFilter  = "mermaid-filter"
	DepPandocCrossref = "pandoc-crossref"
)

// Dependency is an external tool the generated commands may need.
type Dependency struct {
	Name     string
	Required bool     // pandoc itself
	Engine   bool     // a PDF engine selectable via pdfEngine
	Settings []string // settings that cannot take effect without it
}

var dependencies = []Dependency{
	{Name: DepPandoc, Required: true},
	{Name: DepTectonic, Engine: true},
	{Name: DepXeLaTeX, Engine: true},
	{Name: DepLuaLaTeX, Engine: true},
	{Name: DepPDFLaTeX, Engine: true},
	{Name: DepMermaidFilter, Settings: []string{"mermaidFormat"}},
	{Name: DepPandocCrossref, Settings: []string{"crossref"}},
}

// Dependencies returns every known dependency in probe order.
func Dependencies() []Dependency {
	return append([]Dependency(nil), dependencies...)
}

// LookupDependency finds a dependency by name.
func LookupDependency(name string) (Dependency, bool) {
	for _, d := range dependencies {
		if d.Name == name {
			return d, true
		}
	}
	return Dependency{}, false
}

// DependencyStatus is the probe outcome for one dependency.
type DependencyStatus struct {
	Dependency
	Available bool
	Version   string // first line of --version output, when available
	Detail    string // failure output when unavailable
}

// Report is the outcome of a full probe.
type Report struct {
	Statuses []DependencyStatus
}

// Status returns the status of the named dependency.
func (r Report) Status(name string) (DependencyStatus, bool) {
	for _, s := range r.Statuses {
		if s.Name == name {
			return s, true
		}
	}
	return DependencyStatus{}, false
}

// PandocAvailable reports whether pandoc was found. A missing pandoc only
// warns: commands can still be built and previewed.
func (r Report) PandocAvailable() bool {
	s, ok := r.Status(DepPandoc)
	return ok && s.Available
}

// AvailableEngines lists the PDF engines that were found, in probe order.
func (r Report) AvailableEngines() []string {
	var out []string
	for _, s := range r.Statuses {
		if s.Engine && s.Available {
			out = append(out, s.Name)
		}
	}
	return out
}

// Missing returns the unavailable dependencies.
func (r Report) Missing() []DependencyStatus {
	var out []DependencyStatus
	for _, s := range r.Statuses {
		if !s.Available {
			out = append(out, s)
		}
	}
	return out
}

// DisabledSettings lists, sorted, the settings IDs that cannot take effect
// with the tools found. pdfEngine is disabled only when no engine exists.
func (r Report) DisabledSettings() []string {
	seen := map[string]bool{}
	for _, s := range r.Statuses {
		if !s.Available {
			for _, id := range s.Settings {
				seen[id] = true
			}
		}
	}
	if len(r.AvailableEngines()) == 0 {
		seen["pdfEngine"] = true
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Prober checks which dependencies are installed.
type Prober struct {
	runner Runner
	goos   string
}

// NewProber returns a Prober running checks through r. A nil r uses the
// platform shell.
func NewProber(r Runner) *Prober {
	if r == nil {
		r = ShellRunner{}
	}
	return &Prober{runner: r, goos: runtime.GOOS}
}

// CheckCommand runs command and returns its stdout. Failure wraps
// ErrCommandFailed with the command's stderr.
func (p *Prober) CheckCommand(ctx context.Context, command string) (string, error) {
	stdout, stderr, err := p.runner.Run(ctx, command)
	if err != nil {
		detail := strings.TrimSpace(stderr)
		if detail == "" {
			detail = err.Error()
		}
		return "", fmt.Errorf("%w: %s: %s", ErrCommandFailed, command, detail)
	}
	return stdout, nil
}

// Probe checks every dependency concurrently. Failures are recorded per
// dependency and never abort the probe.
func (p *Prober) Probe(ctx context.Context) Report {
	statuses := make([]DependencyStatus, len(dependencies))

	var wg sync.WaitGroup
	for i, dep := range dependencies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			statuses[i] = p.probeOne(ctx, dep)
		}()
	}
	wg.Wait()

	return Report{Statuses: statuses}
}

func (p *Prober) probeOne(ctx context.Context, dep Dependency) DependencyStatus {
	st := DependencyStatus{Dependency: dep}
	out, err := p.CheckCommand(ctx, p.checkLine(dep.Name))
	if err != nil {
		st.Detail = err.Error()
		return st
	}
	st.Available = true
	st.Version = firstLine(out)
	return st
}

// checkLine returns the probe command for a dependency. mermaid-filter has
// no version flag, so only its presence on PATH is checked.
func (p *Prober) checkLine(name string) string {
	if name == DepMermaidFilter {
		if p.goos == "windows" {
			return "where " + name
		}
		return "command -v " + name
	}
	return name + " --version"
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
