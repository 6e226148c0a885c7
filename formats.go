package pandoccmd

import "sort"

// formatExtensions maps pandoc output formats to file extensions.
var formatExtensions = map[string]string{
	"pdf":          "pdf",
	"beamer":       "pdf",
	"docx":         "docx",
	"odt":          "odt",
	"rtf":          "rtf",
	"pptx":         "pptx",
	"html":         "html",
	"html4":        "html",
	"html5":        "html",
	"revealjs":     "html",
	"slidy":        "html",
	"epub":         "epub",
	"epub2":        "epub",
	"epub3":        "epub",
	"latex":        "tex",
	"context":      "tex",
	"markdown":     "md",
	"gfm":          "md",
	"commonmark":   "md",
	"rst":          "rst",
	"asciidoc":     "adoc",
	"org":          "org",
	"plain":        "txt",
	"mediawiki":    "wiki",
	"textile":      "textile",
	"docbook":      "xml",
	"jats":         "xml",
	"typst":        "typ",
	"ipynb":        "ipynb",
	"json":         "json",
	"man":          "1",
	"texinfo":      "texi",
	"opendocument": "xml",
}

// ExtensionFor returns the file extension for format. Unknown formats use
// the format name itself.
func ExtensionFor(format string) string {
	if ext, ok := formatExtensions[format]; ok {
		return ext
	}
	return format
}

// IsKnownFormat reports whether format is in the extension table.
func IsKnownFormat(format string) bool {
	_, ok := formatExtensions[format]
	return ok
}

// OutputFormats returns every known output format, sorted.
func OutputFormats() []string {
	out := make([]string, 0, len(formatExtensions))
	for f := range formatExtensions {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// isHTMLFamily reports formats that accept -s for a full HTML document.
func isHTMLFamily(format string) bool {
	switch format {
	case "html", "html4", "html5", "revealjs":
		return true
	}
	return false
}

// isLaTeXFamily reports formats that accept -s for a full LaTeX document.
func isLaTeXFamily(format string) bool {
	switch format {
	case "latex", "beamer", "context":
		return true
	}
	return false
}

// isDarkCSSTarget reports formats whose dark mode is injected as CSS.
func isDarkCSSTarget(format string) bool {
	switch format {
	case "html", "html4", "html5", "revealjs", "epub", "epub2", "epub3":
		return true
	}
	return false
}
