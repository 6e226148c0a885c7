package pandoccmd

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// Output formats with dedicated handling.
const (
	FormatPDF    = "pdf"
	FormatBeamer = "beamer"
)

// Margin modes.
const (
	MarginUniform    = "uniform"
	MarginIndividual = "individual"
)

// Page number positions.
const (
	PageNumberBottomCenter = "bottom-center"
	PageNumberBottomRight  = "bottom-right"
	PageNumberTopRight     = "top-right"
	PageNumberNone         = "none"
)

// Typography values that produce no token.
const (
	DefaultFontSize   = "12pt"
	DefaultLineHeight = "1.5"
)

// Snapshot is a point-in-time record of every conversion option.
// Create it with NewSnapshot; Build treats it as read-only input.
type Snapshot struct {
	// Source. InputPath names the document; SourceText is only sniffed for
	// mermaid fences.
	InputPath  string `mapstructure:"-"`
	SourceText string `mapstructure:"-"`

	// Output
	OutputFormat string `mapstructure:"outputFormat" validate:"pandocformat"`
	InputFormat  string `mapstructure:"inputFormat" validate:"oneof=auto markdown gfm commonmark commonmark_x markdown_strict markdown_mmd markdown_phpextra rst html latex org docx odt epub textile mediawiki docbook jats typst"`
	OutputDir    string `mapstructure:"outputDir" validate:"max=4096"`
	OutputName   string `mapstructure:"outputName" validate:"max=255,excludesall=/\\"`

	// Document
	Standalone       bool   `mapstructure:"standalone"`
	DocumentClass    string `mapstructure:"documentClass" validate:"alphanum,max=32"`
	TopLevelDivision string `mapstructure:"topLevelDivision" validate:"oneof=default section chapter part"`
	NumberSections   bool   `mapstructure:"numberSections"`
	TOC              bool   `mapstructure:"toc"`
	TOCDepth         int    `mapstructure:"tocDepth" validate:"min=1,max=6"`
	TOCOwnPage       bool   `mapstructure:"tocOwnPage"`
	ListOfFigures    bool   `mapstructure:"listOfFigures"`
	ListOfTables     bool   `mapstructure:"listOfTables"`
	TitlePage        bool   `mapstructure:"titlePage"`

	// PDF engine and page geometry
	PDFEngine    string `mapstructure:"pdfEngine" validate:"oneof=tectonic xelatex lualatex pdflatex"`
	PaperSize    string `mapstructure:"paperSize" validate:"oneof=a3 a4 a5 b5 letter legal executive"`
	Orientation  string `mapstructure:"orientation" validate:"oneof=portrait landscape"`
	MarginUnit   string `mapstructure:"marginUnit" validate:"oneof=in cm mm pt"`
	MarginMode   string `mapstructure:"marginMode" validate:"oneof=uniform individual"`
	Margin       string `mapstructure:"margin" validate:"omitempty,pandocdimension"`
	MarginTop    string `mapstructure:"marginTop" validate:"omitempty,pandocdimension"`
	MarginBottom string `mapstructure:"marginBottom" validate:"omitempty,pandocdimension"`
	MarginLeft   string `mapstructure:"marginLeft" validate:"omitempty,pandocdimension"`
	MarginRight  string `mapstructure:"marginRight" validate:"omitempty,pandocdimension"`

	// Typography
	MainFont   string `mapstructure:"mainFont" validate:"max=128"`
	MonoFont   string `mapstructure:"monoFont" validate:"max=128"`
	FontSize   string `mapstructure:"fontSize" validate:"oneof=8pt 9pt 10pt 11pt 12pt 14pt 17pt 20pt"`
	LineHeight string `mapstructure:"lineHeight" validate:"pandocdimension"`

	// Code
	HighlightTheme   string `mapstructure:"highlightTheme" validate:"pandoctheme"`
	CodeBlockBg      bool   `mapstructure:"codeBlockBg"`
	CodeBlockBgColor string `mapstructure:"codeBlockBgColor" validate:"pandoccolor"`

	// Metadata
	Title      string `mapstructure:"title" validate:"max=512"`
	Author     string `mapstructure:"author" validate:"max=512"`
	Date       string `mapstructure:"date" validate:"max=512"`
	DateFormat string `mapstructure:"dateFormat" validate:"dateformat"`

	// Header and footer zones
	HeaderLeft   string `mapstructure:"headerLeft" validate:"max=512"`
	HeaderCenter string `mapstructure:"headerCenter" validate:"max=512"`
	HeaderRight  string `mapstructure:"headerRight" validate:"max=512"`
	FooterLeft   string `mapstructure:"footerLeft" validate:"max=512"`
	FooterCenter string `mapstructure:"footerCenter" validate:"max=512"`
	FooterRight  string `mapstructure:"footerRight" validate:"max=512"`

	// Page numbering, used only when every zone is empty
	PageNumberFormat   string `mapstructure:"pageNumberFormat" validate:"oneof=plain page page-of of"`
	PageNumberPosition string `mapstructure:"pageNumberPosition" validate:"oneof=bottom-center bottom-right top-right none"`
	PageNumberStyle    string `mapstructure:"pageNumberStyle" validate:"oneof=arabic roman Roman"`

	// Filters. The mermaid filter itself is derived from SourceText.
	MermaidFormat string `mapstructure:"mermaidFormat" validate:"oneof=svg png"`
	Crossref      bool   `mapstructure:"crossref"`
	Citeproc      bool   `mapstructure:"citeproc"`

	// Links
	ColorLinks bool   `mapstructure:"colorLinks"`
	LinkColor  string `mapstructure:"linkColor" validate:"pandoccolor"`
	DarkMode   bool   `mapstructure:"darkMode"`

	// Escape hatches
	CustomVars string `mapstructure:"customVars" validate:"max=4096"`
	ExtraArgs  string `mapstructure:"extraArgs" validate:"max=4096"`

	// Captured at creation so Build stays a pure function of the snapshot.
	Now  time.Time `mapstructure:"-"`
	User string    `mapstructure:"-"`
}

// SettingIDs is the fixed list of option keys presets store and restore.
// It is the serialization contract for presets; every ID matches a
// mapstructure tag on Snapshot.
var SettingIDs = []string{
	"outputFormat", "inputFormat", "outputDir", "outputName",
	"standalone", "documentClass", "topLevelDivision", "numberSections",
	"toc", "tocDepth", "tocOwnPage", "listOfFigures", "listOfTables", "titlePage",
	"pdfEngine", "paperSize", "orientation", "marginUnit", "marginMode",
	"margin", "marginTop", "marginBottom", "marginLeft", "marginRight",
	"mainFont", "monoFont", "fontSize", "lineHeight",
	"highlightTheme", "codeBlockBg", "codeBlockBgColor",
	"title", "author", "date", "dateFormat",
	"headerLeft", "headerCenter", "headerRight",
	"footerLeft", "footerCenter", "footerRight",
	"pageNumberFormat", "pageNumberPosition", "pageNumberStyle",
	"mermaidFormat", "crossref", "citeproc",
	"colorLinks", "linkColor", "darkMode",
	"customVars", "extraArgs",
}

var settingIDSet = func() map[string]bool {
	m := make(map[string]bool, len(SettingIDs))
	for _, id := range SettingIDs {
		m[id] = true
	}
	return m
}()

// IsSettingID reports whether id is in SettingIDs.
func IsSettingID(id string) bool { return settingIDSet[id] }

// Values is the raw, flat form of the settings keyed by settings ID.
// Values may hold strings, numbers or booleans in any mix; NewSnapshot
// converts them.
type Values map[string]any

// Restrict returns a copy of v holding only keys in SettingIDs with
// non-nil values.
func (v Values) Restrict() Values {
	out := make(Values, len(v))
	for k, val := range v {
		if val != nil && settingIDSet[k] {
			out[k] = val
		}
	}
	return out
}

// Merge returns a copy of v with the settings in over applied on top.
// Keys outside SettingIDs are ignored.
func (v Values) Merge(over Values) Values {
	out := make(Values, len(v)+len(over))
	for k, val := range v {
		out[k] = val
	}
	for k, val := range over.Restrict() {
		out[k] = val
	}
	return out
}

// DefaultValues returns the value of every setting in a fresh form.
func DefaultValues() Values {
	return Values{
		"outputFormat":       FormatPDF,
		"inputFormat":        "auto",
		"outputDir":          "",
		"outputName":         "",
		"standalone":         false,
		"documentClass":      "article",
		"topLevelDivision":   "default",
		"numberSections":     false,
		"toc":                false,
		"tocDepth":           3,
		"tocOwnPage":         false,
		"listOfFigures":      false,
		"listOfTables":       false,
		"titlePage":          false,
		"pdfEngine":          "xelatex",
		"paperSize":          "a4",
		"orientation":        "portrait",
		"marginUnit":         "in",
		"marginMode":         MarginUniform,
		"margin":             "1",
		"marginTop":          "",
		"marginBottom":       "",
		"marginLeft":         "",
		"marginRight":        "",
		"mainFont":           "",
		"monoFont":           "",
		"fontSize":           DefaultFontSize,
		"lineHeight":         DefaultLineHeight,
		"highlightTheme":     "pygments",
		"codeBlockBg":        false,
		"codeBlockBgColor":   "#f5f5f5",
		"title":              "",
		"author":             "",
		"date":               "",
		"dateFormat":         "iso",
		"headerLeft":         "",
		"headerCenter":       "",
		"headerRight":        "",
		"footerLeft":         "",
		"footerCenter":       "",
		"footerRight":        "",
		"pageNumberFormat":   "page",
		"pageNumberPosition": PageNumberBottomCenter,
		"pageNumberStyle":    "arabic",
		"mermaidFormat":      "svg",
		"crossref":           false,
		"citeproc":           false,
		"colorLinks":         false,
		"linkColor":          "#0066cc",
		"darkMode":           false,
		"customVars":         "",
		"extraArgs":          "",
	}
}

// Capture holds the non-setting inputs of a snapshot.
type Capture struct {
	InputPath  string
	SourceText string
	Now        time.Time
	User       string
}

// CaptureNow captures the wall clock and the current user name.
func CaptureNow(inputPath, sourceText string) Capture {
	return Capture{
		InputPath:  inputPath,
		SourceText: sourceText,
		Now:        time.Now(),
		User:       currentUser(),
	}
}

// keepEmpty lists free-text settings where an empty string is a value of
// its own rather than a missing one. An empty margin drops the geometry
// variable.
var keepEmpty = map[string]bool{
	"margin": true,
}

// NewSnapshot validates values and returns the snapshot they describe.
// Missing settings take their defaults, and an empty string for a choice
// setting whose default is non-empty counts as missing. Keys outside
// SettingIDs are ignored, including "mermaid", which is derived from the
// source text.
func NewSnapshot(values Values, capture Capture) (Snapshot, error) {
	defaults := DefaultValues()
	merged := defaults.Merge(values)
	for k, v := range merged {
		if s, ok := v.(string); ok && s == "" && !keepEmpty[k] {
			merged[k] = defaults[k]
		}
	}

	var s Snapshot
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(merged)); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}

	s.InputPath = capture.InputPath
	s.SourceText = capture.SourceText
	s.Now = capture.Now
	s.User = capture.User

	if err := validate.Struct(s); err != nil {
		return Snapshot{}, describeValidationError(err)
	}
	return s, nil
}

// Values returns the snapshot's settings keyed by settings ID.
func (s Snapshot) Values() Values {
	out := Values{}
	// Struct to map decoding cannot fail for a flat struct of scalars.
	_ = mapstructure.Decode(s, (*map[string]any)(&out))
	return out.Restrict()
}

// With returns a new snapshot with values applied over s. Settings absent
// from values keep their current value.
func (s Snapshot) With(values Values) (Snapshot, error) {
	return NewSnapshot(s.Values().Merge(values), s.Capture())
}

// Capture returns the non-setting inputs of s.
func (s Snapshot) Capture() Capture {
	return Capture{InputPath: s.InputPath, SourceText: s.SourceText, Now: s.Now, User: s.User}
}

// IsPDF reports whether the snapshot targets PDF output.
func (s Snapshot) IsPDF() bool { return s.OutputFormat == FormatPDF }

// WritesPDF reports whether pandoc renders the output through a PDF engine.
// Beamer slides do, but take none of the page layout of PDF output.
func (s Snapshot) WritesPDF() bool { return s.IsPDF() || s.OutputFormat == FormatBeamer }

// OutputExtension returns the extension derived from the output format.
func (s Snapshot) OutputExtension() string { return ExtensionFor(s.OutputFormat) }

// OutputPath returns the unquoted output path pandoc will write.
// The base name defaults to "output" and is not suffixed twice.
func (s Snapshot) OutputPath() string {
	name := strings.TrimSpace(s.OutputName)
	if name == "" {
		name = "output"
	}
	ext := s.OutputExtension()
	if !strings.HasSuffix(strings.ToLower(name), "."+strings.ToLower(ext)) {
		name += "." + ext
	}
	if s.OutputDir == "" {
		return name
	}
	return filepath.Join(s.OutputDir, name)
}

func describeValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	fe := verrs[0]
	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}
	return fmt.Errorf("%w: %s=%q fails %s", ErrInvalidSetting, fe.Field(), fmt.Sprint(fe.Value()), rule)
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		name := u.Username
		if i := strings.LastIndexAny(name, `\/`); i >= 0 {
			name = name[i+1:] // DOMAIN\name on Windows
		}
		return name
	}
	for _, key := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
