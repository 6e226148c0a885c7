package pandoccmd

import "strings"

// fancyhdr bootstrap, always emitted for PDF output.
var headerFooterBootstrap = []string{
	`\usepackage{fancyhdr}`,
	`\usepackage{lastpage}`,
	`\pagestyle{fancy}`,
	`\fancyhf{}`,
}

type zone struct {
	macro string // fancyhead or fancyfoot
	slot  string // L, C or R
	text  string
}

func zones(s Snapshot) []zone {
	return []zone{
		{macro: "fancyhead", slot: "L", text: s.HeaderLeft},
		{macro: "fancyhead", slot: "C", text: s.HeaderCenter},
		{macro: "fancyhead", slot: "R", text: s.HeaderRight},
		{macro: "fancyfoot", slot: "L", text: s.FooterLeft},
		{macro: "fancyfoot", slot: "C", text: s.FooterCenter},
		{macro: "fancyfoot", slot: "R", text: s.FooterRight},
	}
}

// headerFooterIncludes returns the LaTeX header-includes for the page
// header and footer. Zones with text each get a directive; when none has
// text, a single page-number directive is synthesized instead.
func headerFooterIncludes(s Snapshot) []string {
	out := append([]string(nil), headerFooterBootstrap...)

	custom := false
	for _, z := range zones(s) {
		resolved := strings.TrimSpace(resolveZone(z.text, s))
		if resolved == "" {
			continue
		}
		custom = true
		out = append(out, `\`+z.macro+`[`+z.slot+`]{`+resolved+`}`)
	}
	if custom {
		return out
	}

	out = append(out, pageNumberIncludes(s)...)
	return append(out, `\renewcommand{\headrulewidth}{0pt}`)
}

// pageNumberIncludes returns the default page-number directive, preceded
// by \pagenumbering for non-arabic numerals. Position "none" yields nothing.
func pageNumberIncludes(s Snapshot) []string {
	var macro, slot string
	switch s.PageNumberPosition {
	case PageNumberBottomCenter:
		macro, slot = "fancyfoot", "C"
	case PageNumberBottomRight:
		macro, slot = "fancyfoot", "R"
	case PageNumberTopRight:
		macro, slot = "fancyhead", "R"
	default:
		return nil
	}

	var out []string
	if s.PageNumberStyle == "roman" || s.PageNumberStyle == "Roman" {
		out = append(out, `\pagenumbering{`+s.PageNumberStyle+`}`)
	}
	return append(out, `\`+macro+`[`+slot+`]{`+pageNumberText(s.PageNumberFormat)+`}`)
}

// pageNumberText renders a page-number format as LaTeX.
func pageNumberText(format string) string {
	switch format {
	case "page":
		return `Page ` + macroPage
	case "page-of":
		return `Page ` + macroPage + `{} of ` + macroLastPage
	case "of":
		return macroPage + `{} of ` + macroLastPage
	default:
		return macroPage
	}
}
