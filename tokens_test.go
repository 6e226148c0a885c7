package pandoccmd

import "testing"

func TestResolveMetadata(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		input  string
		format string
		want   string
	}{
		{name: "no tokens", text: "Quarterly report", want: "Quarterly report"},
		{name: "today iso", text: "{today}", format: "iso", want: "2025-03-14"},
		{name: "today long", text: "{today}", format: "long", want: "March 14, 2025"},
		{name: "today custom", text: "{today}", format: "DD/MM/YYYY", want: "14/03/2025"},
		{name: "year", text: "(c) {year}", want: "(c) 2025"},
		{name: "file strips dir and ext", text: "{file}", input: "/docs/notes.md", want: "notes"},
		{name: "file without input", text: "{file}", want: "input"},
		{name: "user", text: "by {user}", want: "by ada"},
		{name: "structural tokens untouched", text: "{page}", want: "{page}"},
		{name: "unknown token kept", text: "{weather}", want: "{weather}"},
		{name: "no rescan", text: "{file}", input: "{user}.md", want: "{user}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			values := Values{}
			if tt.format != "" {
				values["dateFormat"] = tt.format
			}
			s := mustSnapshot(t, values, tt.input, "")
			if got := resolveMetadata(tt.text, s); got != tt.want {
				t.Errorf("resolveMetadata(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestResolveZone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		class string
		input string
		want  string
	}{
		{name: "page", text: "{page}", want: `\thepage`},
		{name: "page of pages", text: "{page} of {pages}", want: `\thepage of \pageref{LastPage}`},
		{name: "chapter", text: "{chapter}", want: `\leftmark`},
		{name: "section in article", text: "{section}", class: "article", want: `\leftmark`},
		{name: "section in report", text: "{section}", class: "report", want: `\rightmark`},
		{name: "section in book", text: "{section}", class: "book", want: `\rightmark`},
		{name: "mixed with metadata", text: "{file} - {page}", want: `input - \thepage`},
		{name: "file name escaped", text: "{file} - {page}", input: "docs/my_report.md", want: `my\_report - \thepage`},
		{name: "zone text kept raw", text: `\textbf{{file}}`, input: "a&b.md", want: `\textbf{a\&b}`},
		{name: "literal", text: "Confidential", want: "Confidential"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			values := Values{}
			if tt.class != "" {
				values["documentClass"] = tt.class
			}
			s := mustSnapshot(t, values, tt.input, "")
			if got := resolveZone(tt.text, s); got != tt.want {
				t.Errorf("resolveZone(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestResolveMetadata_NotEscaped(t *testing.T) {
	t.Parallel()

	s := mustSnapshot(t, Values{}, "my_report.md", "")
	if got := resolveMetadata("{file}", s); got != "my_report" {
		t.Errorf("resolveMetadata = %q, want %q", got, "my_report")
	}
}

func TestLatexEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "my_report", want: `my\_report`},
		{in: "50% & #1 $5", want: `50\% \& \#1 \$5`},
		{in: "{x}", want: `\{x\}`},
		{in: `a\b`, want: `a\textbackslash{}b`},
		{in: "~^", want: `\textasciitilde{}\textasciicircum{}`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := latexEscape(tt.in); got != tt.want {
				t.Errorf("latexEscape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
