package pandoccmd

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func newTestProber(results map[string]fakeResult, goos string) (*Prober, *fakeRunner) {
	runner := &fakeRunner{results: results}
	p := NewProber(runner)
	p.goos = goos
	return p, runner
}

func TestProber_Probe(t *testing.T) {
	t.Parallel()

	p, runner := newTestProber(map[string]fakeResult{
		"pandoc --version":          {stdout: "pandoc 3.1.9\nFeatures: +server +lua\n"},
		"xelatex --version":         {stdout: "\nXeTeX 3.141592653-2.6-0.999995 (TeX Live 2023)\n"},
		"command -v mermaid-filter": {stdout: "/usr/local/bin/mermaid-filter\n"},
	}, "linux")

	report := p.Probe(context.Background())

	if len(report.Statuses) != len(Dependencies()) {
		t.Fatalf("got %d statuses, want %d", len(report.Statuses), len(Dependencies()))
	}
	for i, dep := range Dependencies() {
		if report.Statuses[i].Name != dep.Name {
			t.Errorf("status %d = %s, want %s (probe order)", i, report.Statuses[i].Name, dep.Name)
		}
	}
	if !report.PandocAvailable() {
		t.Error("pandoc should be available")
	}
	if st, _ := report.Status(DepPandoc); st.Version != "pandoc 3.1.9" {
		t.Errorf("pandoc version = %q", st.Version)
	}
	if st, _ := report.Status(DepXeLaTeX); st.Version != "XeTeX 3.141592653-2.6-0.999995 (TeX Live 2023)" {
		t.Errorf("xelatex version = %q", st.Version)
	}
	if got := report.AvailableEngines(); !reflect.DeepEqual(got, []string{DepXeLaTeX}) {
		t.Errorf("AvailableEngines() = %v", got)
	}
	if got := report.DisabledSettings(); !reflect.DeepEqual(got, []string{"crossref"}) {
		t.Errorf("DisabledSettings() = %v", got)
	}

	var missing []string
	for _, st := range report.Missing() {
		missing = append(missing, st.Name)
		if !strings.Contains(st.Detail, "not found") {
			t.Errorf("%s detail = %q", st.Name, st.Detail)
		}
	}
	want := []string{DepTectonic, DepLuaLaTeX, DepPDFLaTeX, DepPandocCrossref}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("Missing() = %v, want %v", missing, want)
	}
	if n := len(runner.seen()); n != len(Dependencies()) {
		t.Errorf("ran %d checks, want %d", n, len(Dependencies()))
	}
}

func TestProber_NothingInstalled(t *testing.T) {
	t.Parallel()

	p, _ := newTestProber(nil, "linux")
	report := p.Probe(context.Background())

	if report.PandocAvailable() {
		t.Error("pandoc reported available")
	}
	want := []string{"crossref", "mermaidFormat", "pdfEngine"}
	if got := report.DisabledSettings(); !reflect.DeepEqual(got, want) {
		t.Errorf("DisabledSettings() = %v, want %v", got, want)
	}
}

func TestProber_CheckLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos, dep, want string
	}{
		{goos: "linux", dep: DepPandoc, want: "pandoc --version"},
		{goos: "windows", dep: DepTectonic, want: "tectonic --version"},
		{goos: "darwin", dep: DepMermaidFilter, want: "command -v mermaid-filter"},
		{goos: "windows", dep: DepMermaidFilter, want: "where mermaid-filter"},
	}
	for _, tt := range tests {
		p, _ := newTestProber(nil, tt.goos)
		if got := p.checkLine(tt.dep); got != tt.want {
			t.Errorf("%s/%s: checkLine() = %q, want %q", tt.goos, tt.dep, got, tt.want)
		}
	}
}

func TestProber_CheckCommand(t *testing.T) {
	t.Parallel()

	p, _ := newTestProber(map[string]fakeResult{
		"echo hi": {stdout: "hi\n"},
		"false":   {err: fakeError("exit status 1")},
	}, "linux")

	out, err := p.CheckCommand(context.Background(), "echo hi")
	if err != nil || out != "hi\n" {
		t.Errorf("CheckCommand(echo) = %q, %v", out, err)
	}

	_, err = p.CheckCommand(context.Background(), "false")
	if !errors.Is(err, ErrCommandFailed) || !strings.Contains(err.Error(), "exit status 1") {
		t.Errorf("CheckCommand(false) error = %v", err)
	}
}

func TestLookupDependency(t *testing.T) {
	t.Parallel()

	d, ok := LookupDependency(DepPandoc)
	if !ok || !d.Required {
		t.Errorf("pandoc = %+v, %v", d, ok)
	}
	if _, ok := LookupDependency("latexmk"); ok {
		t.Error("unknown dependency found")
	}
}
