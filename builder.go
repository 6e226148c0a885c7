package pandoccmd

import (
	"strconv"
	"strings"

	"github.com/alnah/go-pandoc-cmd/internal/markdown"
)

// DarkHeaderPlaceholder stands in for the dark mode LaTeX header path until
// the executor writes the header and substitutes its location.
const DarkHeaderPlaceholder = "__PANDOCCMD_DARK_HEADER__"

const (
	program          = "pandoc"
	defaultInputName = "input.md"
	mermaidLanguage  = "mermaid"
)

// darkLinkColor is the fixed palette dark mode forces on every link kind.
const darkLinkColor = "cyan"

// darkModeCSS is injected into HTML and EPUB documents in dark mode.
const darkModeCSS = `<style>body{background:#1e1e2e;color:#cdd6f4}a{color:#89dceb}pre,code{background:#313244;color:#cdd6f4}</style>`

// Command is an ordered pandoc invocation. Each token is a shell fragment:
// a flag with its already-quoted value, or a bare word.
type Command struct {
	Tokens []string
}

// Line joins the tokens into a single executable command line.
func (c Command) Line() string { return strings.Join(c.Tokens, " ") }

// Preview joins the tokens one per line with shell continuations.
func (c Command) Preview() string { return strings.Join(c.Tokens, " \\\n  ") }

// String implements fmt.Stringer.
func (c Command) String() string { return c.Line() }

// DetectMermaid reports whether source has a mermaid code fence.
func DetectMermaid(source string) bool {
	return markdown.HasFence([]byte(source), mermaidLanguage)
}

// Build translates s into a pandoc command. It is pure and never fails:
// empty optional settings omit their tokens, and nothing checks that the
// referenced tools are installed.
func Build(s Snapshot) Command {
	b := &tokens{}
	pdf := s.IsPDF()

	input := s.InputPath
	if input == "" {
		input = defaultInputName
	}
	b.add(program, quoteDouble(input))
	if s.InputFormat != "" && s.InputFormat != "auto" {
		b.add("-f " + s.InputFormat)
	}

	b.add("-t " + s.OutputFormat)
	b.add("-o " + quoteDouble(s.OutputPath()))

	if s.WritesPDF() || (s.Standalone && (isHTMLFamily(s.OutputFormat) || isLaTeXFamily(s.OutputFormat))) {
		b.add("-s")
	}

	switch {
	case pdf:
		buildPDF(b, s)
	case s.WritesPDF():
		b.add("--pdf-engine=" + s.PDFEngine)
	}

	if s.MainFont != "" {
		b.variable("mainfont", quoteDouble(s.MainFont))
	}
	if s.MonoFont != "" {
		b.variable("monofont", quoteDouble(s.MonoFont))
	}
	if s.FontSize != "" && s.FontSize != DefaultFontSize {
		b.variable("fontsize", s.FontSize)
	}
	if s.LineHeight != "" && s.LineHeight != DefaultLineHeight {
		b.variable("linestretch", s.LineHeight)
	}

	if s.HighlightTheme != "" && s.HighlightTheme != ThemeNone {
		b.add("--syntax-highlighting=" + s.HighlightTheme)
	}
	if pdf && s.CodeBlockBg {
		b.headerInclude(`\definecolor{shadecolor}{HTML}{` + hexDigits(s.CodeBlockBgColor) + `}`)
	}

	if s.TOC {
		b.add("--toc", "--toc-depth="+strconv.Itoa(s.TOCDepth))
		if s.TOCOwnPage {
			b.variable("toc-own-page", "true")
		}
	}
	if s.ListOfFigures {
		b.add("-V lof")
	}
	if s.ListOfTables {
		b.add("-V lot")
	}

	if s.TopLevelDivision != "" && s.TopLevelDivision != "default" {
		b.add("--top-level-division=" + s.TopLevelDivision)
	}
	if s.NumberSections {
		b.add("-N")
	}

	b.metadata("title", s.Title, s)
	b.metadata("author", s.Author, s)
	b.metadata("date", s.Date, s)

	if DetectMermaid(s.SourceText) {
		b.add("-F mermaid-filter")
		if s.MermaidFormat == "svg" {
			b.variable("mermaid-format", "svg")
		}
	}

	if s.DarkMode && !pdf && isDarkCSSTarget(s.OutputFormat) {
		b.headerInclude(darkModeCSS)
	}

	if s.Crossref {
		b.add("-F pandoc-crossref")
	}
	if s.Citeproc {
		b.add("--citeproc")
	}

	for _, kv := range customVariables(s.CustomVars) {
		b.variable(kv[0], quoteIfNeeded(kv[1]))
	}
	if extra := strings.TrimSpace(s.ExtraArgs); extra != "" {
		b.add(extra)
	}

	return Command{Tokens: b.list}
}

// buildPDF emits the PDF-only block in its fixed order.
func buildPDF(b *tokens, s Snapshot) {
	b.add("--pdf-engine=" + s.PDFEngine)
	b.variable("documentclass", s.DocumentClass)
	b.variable("papersize", s.PaperSize)
	if s.Orientation == "landscape" {
		b.variable("geometry:landscape", "")
	}

	switch s.MarginMode {
	case MarginIndividual:
		for _, side := range []struct{ name, value string }{
			{"top", s.MarginTop},
			{"bottom", s.MarginBottom},
			{"left", s.MarginLeft},
			{"right", s.MarginRight},
		} {
			if side.value != "" {
				b.variable("geometry:"+side.name, side.value+s.MarginUnit)
			}
		}
	default:
		if s.Margin != "" {
			b.variable("geometry:margin", s.Margin+s.MarginUnit)
		}
	}

	if s.TitlePage {
		b.variable("classoption", "titlepage")
	}

	switch {
	case s.DarkMode:
		b.variable("colorlinks", "true")
		b.variable("linkcolor", darkLinkColor)
		b.variable("urlcolor", darkLinkColor)
		b.variable("citecolor", darkLinkColor)
		b.add("-H " + quoteDouble(DarkHeaderPlaceholder))
	case s.ColorLinks:
		color := quoteSingle("[HTML]{" + hexDigits(s.LinkColor) + "}")
		b.variable("colorlinks", "true")
		b.variable("linkcolor", color)
		b.variable("urlcolor", color)
		b.variable("citecolor", color)
	}

	for _, inc := range headerFooterIncludes(s) {
		b.headerInclude(inc)
	}
}

// customVariables parses "key=value" lines. Blank lines, comments and
// lines without both a key and a value are skipped.
func customVariables(text string) [][2]string {
	var out [][2]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || key == "" || value == "" || strings.ContainsAny(key, " \t") {
			continue
		}
		out = append(out, [2]string{key, value})
	}
	return out
}

// tokens accumulates command fragments.
type tokens struct {
	list []string
}

func (t *tokens) add(tok ...string) { t.list = append(t.list, tok...) }

// variable emits -V key=value, or -V key when value is empty.
func (t *tokens) variable(key, value string) {
	if value == "" {
		t.add("-V " + key)
		return
	}
	t.add("-V " + key + "=" + value)
}

func (t *tokens) headerInclude(latex string) {
	t.variable("header-includes", quoteDouble(latex))
}

// metadata emits -M key="value" when value resolves to non-empty text.
func (t *tokens) metadata(key, value string, s Snapshot) {
	resolved := strings.TrimSpace(resolveMetadata(value, s))
	if resolved == "" {
		return
	}
	t.add("-M " + key + "=" + quoteDouble(resolved))
}
