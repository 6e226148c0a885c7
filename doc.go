// Package pandoccmd builds, previews and runs pandoc command lines.
//
// # Quick Start
//
// Turn raw settings into a validated snapshot, then build the command:
//
//	snap, err := pandoccmd.NewSnapshot(pandoccmd.Values{
//	    "outputFormat": "pdf",
//	    "toc":          true,
//	    "title":        "Report {year}",
//	}, pandoccmd.CaptureNow("report.md", source))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cmd := pandoccmd.Build(snap)
//	fmt.Println(cmd.Preview())
//
// Build is pure: the wall clock and user name used by {today}, {year} and
// {user} are captured into the snapshot, so the same snapshot always yields
// the same tokens.
//
// # Settings
//
// Values is the raw, flat form of the settings, keyed by the IDs in
// SettingIDs. NewSnapshot is the single validation boundary: it decodes
// Values (strings, numbers and booleans are converted as needed), fills
// defaults and rejects out-of-range values with ErrInvalidSetting. Builder
// code never validates.
//
// # Presets
//
// PresetStore keeps named settings as one JSON object under the
// "pandoc-presets" key of any KeyValueStore:
//
//	store := pandoccmd.NewPresetStore(kv)
//	_ = store.Save("thesis", snap)
//	values, ok, _ := store.Load("thesis")
//	if ok {
//	    snap, err = snap.With(values)
//	}
//
// Only keys listed in SettingIDs are stored or applied.
//
// # Running Conversions
//
// Executor runs a built command through the platform shell with an
// extended PATH, one conversion at a time:
//
//	exec := pandoccmd.NewExecutor(pandoccmd.WithTimeout(2 * time.Minute))
//	res, err := exec.Convert(ctx, snap)
//
// Dark mode PDF commands reference a LaTeX header through a placeholder;
// Executor writes the header and substitutes its path, and refuses to run
// a command that still contains the placeholder.
//
// # Toolchain
//
// Prober reports which of pandoc, the PDF engines, mermaid-filter and
// pandoc-crossref are installed; Installer installs, reinstalls or
// uninstalls them through brew, apt-get, winget or npm, streaming output.
// ListFonts enumerates installed font families.
package pandoccmd
