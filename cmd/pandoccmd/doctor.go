package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	flag "github.com/spf13/pflag"

	pandoccmd "github.com/alnah/go-pandoc-cmd"
	"github.com/alnah/go-pandoc-cmd/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Tools    []toolInfo `json:"tools"`
	Chromium chromeInfo `json:"chromium"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Disabled []string   `json:"disabled_settings,omitempty"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// toolInfo is the probe outcome of one dependency.
type toolInfo struct {
	Name     string `json:"name"`
	Found    bool   `json:"found"`
	Required bool   `json:"required"`
	Version  string `json:"version,omitempty"`
}

// chromeInfo holds Chromium detection results. mermaid-filter renders
// diagrams through a headless browser.
type chromeInfo struct {
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
	CI   bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable  bool   `json:"temp_writable"`
	PresetBackend string `json:"preset_backend"`
	PresetStore   bool   `json:"preset_store_ok"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var common commonFlags
	var jsonOutput bool
	addCommonFlags(fs, &common)
	fs.BoolVar(&jsonOutput, "json", false, "print the report as JSON")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := parseFlags(fs, args); err != nil {
		return reportError(env, err)
	}

	s, err := newSession(env, common)
	if err != nil {
		return reportError(env, err)
	}

	result := runDoctor(ctx, s)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, s *session) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env:    envInfo{OS: s.env.GOOS, Arch: runtime.GOARCH},
	}

	checkTools(ctx, s, result)
	checkChromium(s, result)
	checkEnvironment(s, result)
	checkSystem(s, result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkTools probes pandoc, the PDF engines and the filters. Nothing here
// is an error: a missing pandoc still lets commands be built.
func checkTools(ctx context.Context, s *session, result *doctorResult) {
	report := pandoccmd.NewProber(s.env.Runner).Probe(ctx)

	for _, st := range report.Statuses {
		result.Tools = append(result.Tools, toolInfo{
			Name:     st.Name,
			Found:    st.Available,
			Required: st.Required,
			Version:  st.Version,
		})
	}
	result.Disabled = report.DisabledSettings()

	if !report.PandocAvailable() {
		result.Warnings = append(result.Warnings, "pandoc not found; commands can be built but not run"+hints.ForPandocMissing())
	}
	if len(report.AvailableEngines()) == 0 {
		result.Warnings = append(result.Warnings, "no PDF engine found; PDF output is unavailable"+hints.ForEngineMissing(pandoccmd.DepXeLaTeX))
	}
}

// checkChromium locates a browser for mermaid-filter.
func checkChromium(s *session, result *doctorResult) {
	path := s.env.Getenv("ROD_BROWSER_BIN")
	if path == "" {
		var found bool
		path, found = s.env.LookBrowser()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chromium not found; mermaid-filter cannot render diagrams. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}
	result.Chromium = chromeInfo{Found: true, Path: path}
}

// checkEnvironment detects CI environments.
func checkEnvironment(s *session, result *doctorResult) {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if s.env.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// checkSystem verifies the temp directory and the preset store.
func checkSystem(s *session, result *doctorResult) {
	f, err := os.CreateTemp("", "pandoccmd-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s (dark mode PDF needs it)", os.TempDir()))
	} else {
		_ = f.Close()
		_ = os.Remove(f.Name())
		result.System.TempWritable = true
	}

	result.System.PresetBackend = s.cfg.Presets.Backend
	store, closeStore, err := s.presets()
	if err == nil {
		_, err = store.List()
		closeStore()
	}
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Preset store unavailable: %v", err))
		return
	}
	result.System.PresetStore = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, titleStyle.Render("pandoccmd doctor"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Toolchain")
	for _, t := range r.Tools {
		switch {
		case t.Found && t.Version != "":
			fmt.Fprintf(w, "  %s %s: %s\n", labelOK(), t.Name, t.Version)
		case t.Found:
			fmt.Fprintf(w, "  %s %s\n", labelOK(), t.Name)
		default:
			fmt.Fprintf(w, "  %s %s: not found\n", labelWarn(), t.Name)
		}
	}
	if len(r.Disabled) > 0 {
		fmt.Fprintf(w, "  Unavailable settings: %v\n", r.Disabled)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chromium")
	if r.Chromium.Found {
		fmt.Fprintf(w, "  %s Found at %s\n", labelOK(), r.Chromium.Path)
	} else {
		fmt.Fprintf(w, "  %s Not found\n", labelWarn())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  %s Platform: %s/%s\n", labelOK(), r.Env.OS, r.Env.Arch)
	if r.Env.CI {
		fmt.Fprintf(w, "  %s CI: detected\n", labelOK())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  %s Temp directory: writable\n", labelOK())
	} else {
		fmt.Fprintf(w, "  %s Temp directory: not writable\n", labelError())
	}
	if r.System.PresetStore {
		fmt.Fprintf(w, "  %s Preset store: %s\n", labelOK(), r.System.PresetBackend)
	} else {
		fmt.Fprintf(w, "  %s Preset store: %s unavailable\n", labelError(), r.System.PresetBackend)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", labelWarn(), warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", labelError(), err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
