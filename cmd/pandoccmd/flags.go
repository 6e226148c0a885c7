package main

import (
	"strings"

	flag "github.com/spf13/pflag"

	pandoccmd "github.com/alnah/go-pandoc-cmd"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

type flagKind int

const (
	kindString flagKind = iota
	kindBool
	kindInt
	kindLines // repeatable, joined with newlines
)

// settingFlag binds a command-line flag to a settings ID.
type settingFlag struct {
	id    string
	name  string
	short string
	kind  flagKind
	usage string
}

// settingFlags covers every ID in pandoccmd.SettingIDs.
var settingFlags = []settingFlag{
	// Output
	{id: "outputFormat", name: "to", short: "t", usage: "output format (pdf, html, docx, ...)"},
	{id: "inputFormat", name: "from", short: "f", usage: "input format (auto = detect)"},
	{id: "outputDir", name: "output-dir", short: "d", usage: "output directory"},
	{id: "outputName", name: "output", short: "o", usage: "output file name (extension added)"},

	// Document
	{id: "standalone", name: "standalone", short: "s", kind: kindBool, usage: "full document for HTML/LaTeX output"},
	{id: "documentClass", name: "document-class", usage: "LaTeX document class"},
	{id: "topLevelDivision", name: "top-level-division", usage: "default, section, chapter or part"},
	{id: "numberSections", name: "number-sections", short: "N", kind: kindBool, usage: "number section headings"},
	{id: "toc", name: "toc", kind: kindBool, usage: "include a table of contents"},
	{id: "tocDepth", name: "toc-depth", kind: kindInt, usage: "table of contents depth (1-6)"},
	{id: "tocOwnPage", name: "toc-own-page", kind: kindBool, usage: "put the table of contents on its own page"},
	{id: "listOfFigures", name: "lof", kind: kindBool, usage: "include a list of figures"},
	{id: "listOfTables", name: "lot", kind: kindBool, usage: "include a list of tables"},
	{id: "titlePage", name: "title-page", kind: kindBool, usage: "separate title page"},

	// PDF
	{id: "pdfEngine", name: "pdf-engine", usage: "tectonic, xelatex, lualatex or pdflatex"},
	{id: "paperSize", name: "paper-size", usage: "a3, a4, a5, b5, letter, legal or executive"},
	{id: "orientation", name: "orientation", usage: "portrait or landscape"},
	{id: "marginUnit", name: "margin-unit", usage: "in, cm, mm or pt"},
	{id: "marginMode", name: "margin-mode", usage: "uniform or individual"},
	{id: "margin", name: "margin", usage: "uniform margin"},
	{id: "marginTop", name: "margin-top", usage: "top margin (individual mode)"},
	{id: "marginBottom", name: "margin-bottom", usage: "bottom margin (individual mode)"},
	{id: "marginLeft", name: "margin-left", usage: "left margin (individual mode)"},
	{id: "marginRight", name: "margin-right", usage: "right margin (individual mode)"},

	// Typography
	{id: "mainFont", name: "main-font", usage: "body font family"},
	{id: "monoFont", name: "mono-font", usage: "code font family"},
	{id: "fontSize", name: "font-size", usage: "8pt to 20pt"},
	{id: "lineHeight", name: "line-height", usage: "line stretch factor"},

	// Code
	{id: "highlightTheme", name: "highlight", usage: "syntax highlighting theme (none disables)"},
	{id: "codeBlockBg", name: "code-bg", kind: kindBool, usage: "shade code blocks (PDF)"},
	{id: "codeBlockBgColor", name: "code-bg-color", usage: "code block shade as #rrggbb"},

	// Metadata
	{id: "title", name: "title", usage: "document title; tokens {today} {year} {file} {user}"},
	{id: "author", name: "author", usage: "document author"},
	{id: "date", name: "date", usage: "document date, e.g. {today}"},
	{id: "dateFormat", name: "date-format", usage: "iso, european, us, long or tokens like DD/MM/YYYY"},

	// Header and footer
	{id: "headerLeft", name: "header-left", usage: "header left; adds {page} {pages} {chapter} {section}"},
	{id: "headerCenter", name: "header-center", usage: "header center"},
	{id: "headerRight", name: "header-right", usage: "header right"},
	{id: "footerLeft", name: "footer-left", usage: "footer left"},
	{id: "footerCenter", name: "footer-center", usage: "footer center"},
	{id: "footerRight", name: "footer-right", usage: "footer right"},
	{id: "pageNumberFormat", name: "page-number-format", usage: "plain, page, page-of or of"},
	{id: "pageNumberPosition", name: "page-number-position", usage: "bottom-center, bottom-right, top-right or none"},
	{id: "pageNumberStyle", name: "page-number-style", usage: "arabic, roman or Roman"},

	// Filters
	{id: "mermaidFormat", name: "mermaid-format", usage: "svg or png"},
	{id: "crossref", name: "crossref", kind: kindBool, usage: "run pandoc-crossref"},
	{id: "citeproc", name: "citeproc", kind: kindBool, usage: "process citations"},

	// Links
	{id: "colorLinks", name: "color-links", kind: kindBool, usage: "color hyperlinks (PDF)"},
	{id: "linkColor", name: "link-color", usage: "link color as #rrggbb"},
	{id: "darkMode", name: "dark", kind: kindBool, usage: "dark page and text colors"},

	// Escape hatches
	{id: "customVars", name: "var", short: "V", kind: kindLines, usage: "extra -V key=value (repeatable)"},
	{id: "extraArgs", name: "extra-args", usage: "raw arguments appended to the command"},
}

// addSettingFlags registers one flag per setting. Defaults are left empty:
// only flags the user changed are layered over presets and config.
func addSettingFlags(fs *flag.FlagSet) {
	for _, sf := range settingFlags {
		switch sf.kind {
		case kindBool:
			fs.BoolP(sf.name, sf.short, false, sf.usage)
		case kindInt:
			fs.IntP(sf.name, sf.short, 0, sf.usage)
		case kindLines:
			fs.StringArrayP(sf.name, sf.short, nil, sf.usage)
		default:
			fs.StringP(sf.name, sf.short, "", sf.usage)
		}
	}
}

// changedSettings returns the settings the user set explicitly on fs.
// Values stay strings; the snapshot boundary converts them.
func changedSettings(fs *flag.FlagSet) pandoccmd.Values {
	byName := make(map[string]settingFlag, len(settingFlags))
	for _, sf := range settingFlags {
		byName[sf.name] = sf
	}

	values := pandoccmd.Values{}
	fs.Visit(func(f *flag.Flag) {
		sf, ok := byName[f.Name]
		if !ok {
			return
		}
		if sf.kind == kindLines {
			lines, _ := fs.GetStringArray(f.Name)
			values[sf.id] = strings.Join(lines, "\n")
			return
		}
		values[sf.id] = f.Value.String()
	})
	return values
}
