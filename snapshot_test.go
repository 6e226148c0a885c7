package pandoccmd

// Notes:
// - NewSnapshot is the only validation boundary, so invalid input is tested
//   here and never in the builder tests.
// - The SettingIDs/struct tag agreement is checked by reflection: a field
//   added without an ID (or the reverse) fails TestSettingIDs_MatchTags.

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNewSnapshot - Defaults, weak typing and validation
// ---------------------------------------------------------------------------

func TestNewSnapshot_Defaults(t *testing.T) {
	t.Parallel()

	s := mustSnapshot(t, nil, "", "")

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"OutputFormat", s.OutputFormat, FormatPDF},
		{"InputFormat", s.InputFormat, "auto"},
		{"DocumentClass", s.DocumentClass, "article"},
		{"TOCDepth", s.TOCDepth, 3},
		{"PDFEngine", s.PDFEngine, "xelatex"},
		{"MarginMode", s.MarginMode, MarginUniform},
		{"Margin", s.Margin, "1"},
		{"FontSize", s.FontSize, DefaultFontSize},
		{"LineHeight", s.LineHeight, DefaultLineHeight},
		{"HighlightTheme", s.HighlightTheme, "pygments"},
		{"PageNumberPosition", s.PageNumberPosition, PageNumberBottomCenter},
		{"User", s.User, "ada"},
		{"Now", s.Now, fixedNow},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestNewSnapshot_WeaklyTyped(t *testing.T) {
	t.Parallel()

	s := mustSnapshot(t, Values{
		"tocDepth":       "4",
		"toc":            "true",
		"margin":         0.75,
		"numberSections": 1,
		"titlePage":      float64(1),
	}, "", "")

	if s.TOCDepth != 4 {
		t.Errorf("TOCDepth = %d, want 4", s.TOCDepth)
	}
	if !s.TOC {
		t.Error("TOC = false, want true")
	}
	if s.Margin != "0.75" {
		t.Errorf("Margin = %q, want 0.75", s.Margin)
	}
	if !s.NumberSections || !s.TitlePage {
		t.Errorf("NumberSections = %v, TitlePage = %v, want true", s.NumberSections, s.TitlePage)
	}
}

func TestNewSnapshot_EmptyStringMeansDefault(t *testing.T) {
	t.Parallel()

	s := mustSnapshot(t, Values{"documentClass": "", "outputFormat": ""}, "", "")
	if s.DocumentClass != "article" {
		t.Errorf("DocumentClass = %q, want article", s.DocumentClass)
	}
	if s.OutputFormat != FormatPDF {
		t.Errorf("OutputFormat = %q, want pdf", s.OutputFormat)
	}
}

func TestNewSnapshot_EmptyMarginIsKept(t *testing.T) {
	t.Parallel()

	s := mustSnapshot(t, Values{"margin": ""}, "", "")
	if s.Margin != "" {
		t.Errorf("Margin = %q, want empty", s.Margin)
	}
	for _, tok := range Build(s).Tokens {
		if strings.Contains(tok, "geometry:margin") {
			t.Errorf("unexpected geometry token %q for an empty margin", tok)
		}
	}

	s = mustSnapshot(t, Values{}, "", "")
	if s.Margin != "1" {
		t.Errorf("missing margin = %q, want default 1", s.Margin)
	}
}

func TestNewSnapshot_IgnoresUnknownKeys(t *testing.T) {
	t.Parallel()

	s := mustSnapshot(t, Values{"mermaid": true, "bogus": 42, "title": "Kept"}, "", "")
	if s.Title != "Kept" {
		t.Errorf("Title = %q, want Kept", s.Title)
	}
	if hasToken(Build(s).Tokens, "-F mermaid-filter") {
		t.Error("a mermaid value in Values must not enable the filter")
	}
}

func TestNewSnapshot_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values Values
		wantID string
	}{
		{name: "unknown output format", values: Values{"outputFormat": "doc"}, wantID: "outputFormat"},
		{name: "unknown input format", values: Values{"inputFormat": "pdf"}, wantID: "inputFormat"},
		{name: "toc depth too deep", values: Values{"tocDepth": 9}, wantID: "tocDepth"},
		{name: "toc depth not a number", values: Values{"tocDepth": "deep"}, wantID: "tocDepth"},
		{name: "margin with unit", values: Values{"margin": "1in"}, wantID: "margin"},
		{name: "negative margin", values: Values{"marginTop": "-1"}, wantID: "marginTop"},
		{name: "named link color", values: Values{"linkColor": "blue"}, wantID: "linkColor"},
		{name: "unknown theme", values: Values{"highlightTheme": "solarized"}, wantID: "highlightTheme"},
		{name: "page number format", values: Values{"pageNumberFormat": "N/M"}, wantID: "pageNumberFormat"},
		{name: "page number style case", values: Values{"pageNumberStyle": "ROMAN"}, wantID: "pageNumberStyle"},
		{name: "date format", values: Values{"dateFormat": "[unclosed"}, wantID: "dateFormat"},
		{name: "engine", values: Values{"pdfEngine": "context"}, wantID: "pdfEngine"},
		{name: "document class with spaces", values: Values{"documentClass": "my class"}, wantID: "documentClass"},
		{name: "output name with separator", values: Values{"outputName": "a/b"}, wantID: "outputName"},
		{name: "line height", values: Values{"lineHeight": "double"}, wantID: "lineHeight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewSnapshot(tt.values, testCapture("", ""))
			if !errors.Is(err, ErrInvalidSetting) {
				t.Fatalf("error = %v, want ErrInvalidSetting", err)
			}
			if !strings.Contains(err.Error(), tt.wantID) {
				t.Errorf("error %q does not name %q", err, tt.wantID)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSettingIDs - Serialization contract
// ---------------------------------------------------------------------------

func TestSettingIDs_MatchTags(t *testing.T) {
	t.Parallel()

	tagged := map[string]bool{}
	typ := reflect.TypeOf(Snapshot{})
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		tagged[tag] = true
	}

	seen := map[string]bool{}
	for _, id := range SettingIDs {
		if seen[id] {
			t.Errorf("duplicate setting ID %q", id)
		}
		seen[id] = true
		if !tagged[id] {
			t.Errorf("setting ID %q has no Snapshot field", id)
		}
	}
	for tag := range tagged {
		if !seen[tag] {
			t.Errorf("Snapshot field %q missing from SettingIDs", tag)
		}
	}
	if seen["mermaid"] {
		t.Error("mermaid is derived and must not be a setting ID")
	}
}

func TestDefaultValues_CoverSettingIDs(t *testing.T) {
	t.Parallel()

	d := DefaultValues()
	if len(d) != len(SettingIDs) {
		t.Errorf("DefaultValues has %d keys, SettingIDs has %d", len(d), len(SettingIDs))
	}
	for _, id := range SettingIDs {
		if _, ok := d[id]; !ok {
			t.Errorf("no default for %q", id)
		}
	}
}

// ---------------------------------------------------------------------------
// TestSnapshot_Values / With
// ---------------------------------------------------------------------------

func TestSnapshot_ValuesRoundTrip(t *testing.T) {
	t.Parallel()

	s := mustSnapshot(t, Values{
		"outputFormat": "html",
		"toc":          true,
		"tocDepth":     2,
		"title":        "Notes {year}",
		"marginMode":   MarginIndividual,
		"marginTop":    "2",
	}, "notes.md", "# Notes")

	v := s.Values()
	if len(v) != len(SettingIDs) {
		t.Errorf("Values() has %d keys, want %d", len(v), len(SettingIDs))
	}
	if v["tocDepth"] != 2 {
		t.Errorf("Values()[tocDepth] = %v (%T), want int 2", v["tocDepth"], v["tocDepth"])
	}

	again, err := NewSnapshot(v, s.Capture())
	if err != nil {
		t.Fatalf("NewSnapshot(Values()) error = %v", err)
	}
	if !reflect.DeepEqual(again, s) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", again, s)
	}
}

func TestSnapshot_With(t *testing.T) {
	t.Parallel()

	s := mustSnapshot(t, Values{"title": "Before", "toc": true}, "a.md", "")

	next, err := s.With(Values{"title": "After", "unknown": "x"})
	if err != nil {
		t.Fatalf("With() error = %v", err)
	}
	if next.Title != "After" {
		t.Errorf("Title = %q, want After", next.Title)
	}
	if !next.TOC {
		t.Error("TOC changed although absent from the applied values")
	}
	if next.InputPath != "a.md" || next.Now != fixedNow {
		t.Error("With() must keep the captured inputs")
	}
	if s.Title != "Before" {
		t.Error("With() mutated the receiver")
	}

	if _, err := s.With(Values{"tocDepth": 0}); !errors.Is(err, ErrInvalidSetting) {
		t.Errorf("With(invalid) error = %v, want ErrInvalidSetting", err)
	}
}

func TestValues_MergeAndRestrict(t *testing.T) {
	t.Parallel()

	base := Values{"title": "A", "toc": true}
	merged := base.Merge(Values{"title": "B", "nope": 1, "author": nil})

	if merged["title"] != "B" || merged["toc"] != true {
		t.Errorf("Merge() = %v", merged)
	}
	if _, ok := merged["nope"]; ok {
		t.Error("Merge() kept an unknown key")
	}
	if _, ok := merged["author"]; ok {
		t.Error("Merge() kept a nil value")
	}
	if base["title"] != "A" {
		t.Error("Merge() mutated the receiver")
	}
}

// ---------------------------------------------------------------------------
// TestSnapshot_OutputPath - Derived extension
// ---------------------------------------------------------------------------

func TestSnapshot_OutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values Values
		want   string
	}{
		{name: "default name", values: Values{"outputFormat": "docx"}, want: "output.docx"},
		{name: "derived extension", values: Values{"outputFormat": "markdown", "outputName": "notes"}, want: "notes.md"},
		{name: "no double suffix", values: Values{"outputFormat": "pdf", "outputName": "report.pdf"}, want: "report.pdf"},
		{name: "no double suffix any case", values: Values{"outputFormat": "pdf", "outputName": "Report.PDF"}, want: "Report.PDF"},
		{name: "other suffix kept", values: Values{"outputFormat": "pdf", "outputName": "v1.2"}, want: "v1.2.pdf"},
		{name: "with directory", values: Values{"outputFormat": "epub3", "outputName": "book", "outputDir": "out"}, want: filepath.Join("out", "book.epub")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := mustSnapshot(t, tt.values, "", "").OutputPath(); got != tt.want {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
