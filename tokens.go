package pandoccmd

import (
	"strconv"
	"strings"

	"github.com/alnah/go-pandoc-cmd/internal/dateutil"
	"github.com/alnah/go-pandoc-cmd/internal/fileutil"
)

// Metadata tokens, resolved in title, author, date and header/footer zones.
const (
	TokenToday = "{today}"
	TokenYear  = "{year}"
	TokenFile  = "{file}"
	TokenUser  = "{user}"
)

// Structural tokens, resolved only in header/footer zones.
const (
	TokenPage    = "{page}"
	TokenPages   = "{pages}"
	TokenChapter = "{chapter}"
	TokenSection = "{section}"
)

// LaTeX macros the structural tokens expand to.
const (
	macroPage      = `\thepage`
	macroLastPage  = `\pageref{LastPage}`
	macroLeftMark  = `\leftmark`
	macroRightMark = `\rightmark`
)

// fallbackDateLayout is used if the snapshot carries an unparseable date
// format; NewSnapshot rejects those, so it only guards hand-built values.
const fallbackDateLayout = "2006-01-02"

// latexSpecials escapes characters LaTeX treats as markup. The replacer
// scans the input once, so replacement text is never rescanned.
var latexSpecials = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`_`, `\_`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`$`, `\$`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// latexEscape makes v safe to place inside a LaTeX macro argument.
func latexEscape(v string) string {
	return latexSpecials.Replace(v)
}

// resolveMetadata replaces the metadata tokens in text.
func resolveMetadata(text string, s Snapshot) string {
	return substituteMetadata(text, s, nil)
}

// substituteMetadata replaces the metadata tokens in text, passing each
// substituted value through escape when it is non-nil. The surrounding
// text is left as written.
func substituteMetadata(text string, s Snapshot, escape func(string) string) string {
	if !strings.Contains(text, "{") {
		return text
	}

	today, err := dateutil.Format(s.DateFormat, s.Now)
	if err != nil {
		today = s.Now.Format(fallbackDateLayout)
	}

	year, file, user := strconv.Itoa(s.Now.Year()), inputBaseName(s), s.User
	if escape != nil {
		today, year, file, user = escape(today), escape(year), escape(file), escape(user)
	}

	r := strings.NewReplacer(
		TokenToday, today,
		TokenYear, year,
		TokenFile, file,
		TokenUser, user,
	)
	return r.Replace(text)
}

// resolveZone replaces structural tokens in a header/footer zone, then
// hands the result to the metadata pass. Text produced by one pass is
// never rescanned by the same pass. Metadata values are LaTeX-escaped
// because the zone lands inside a fancyhdr macro argument; the zone text
// itself is passed through so users can write their own macros.
func resolveZone(text string, s Snapshot) string {
	if !strings.Contains(text, "{") {
		return text
	}

	section := macroLeftMark
	if hasChapters(s.DocumentClass) {
		section = macroRightMark
	}

	r := strings.NewReplacer(
		TokenPages, macroLastPage,
		TokenPage, macroPage,
		TokenChapter, macroLeftMark,
		TokenSection, section,
	)
	return substituteMetadata(r.Replace(text), s, latexEscape)
}

// hasChapters reports document classes whose \leftmark holds the chapter,
// leaving \rightmark for the section.
func hasChapters(class string) bool {
	switch class {
	case "book", "report", "memoir", "scrbook", "scrreprt":
		return true
	}
	return false
}

// inputBaseName returns the input file name without directory or extension.
func inputBaseName(s Snapshot) string {
	path := s.InputPath
	if path == "" {
		path = defaultInputName
	}
	return fileutil.StripExtension(path)
}
