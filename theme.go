package pandoccmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-pandoc-cmd/internal/markdown"
)

// ThemeNone disables syntax highlighting.
const ThemeNone = "none"

// highlightThemes maps pandoc's built-in highlight styles to the closest
// chroma style, used for local previews only.
var highlightThemes = map[string]string{
	"pygments":   "pygments",
	"tango":      "tango",
	"espresso":   "monokai",
	"zenburn":    "native",
	"kate":       "vs",
	"monochrome": "bw",
	"breezedark": "dracula",
	"haddock":    "pastie",
	ThemeNone:    "bw",
}

// HighlightThemes returns the accepted highlight theme names, sorted.
func HighlightThemes() []string {
	out := make([]string, 0, len(highlightThemes))
	for name := range highlightThemes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsHighlightTheme reports whether name is a pandoc highlight theme or "none".
func IsHighlightTheme(name string) bool {
	_, ok := highlightThemes[name]
	return ok
}

// ThemeColors are the preview colors of a highlight theme, as #rrggbb.
// A color the style leaves unset is empty.
type ThemeColors struct {
	Theme      string
	Style      string
	Background string
	Foreground string
	Keyword    string
	String     string
	Comment    string
}

// ThemePreview returns the preview colors for a pandoc highlight theme.
func ThemePreview(theme string) (ThemeColors, error) {
	styleName, ok := highlightThemes[theme]
	if !ok {
		return ThemeColors{}, fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	style := styles.Get(styleName)

	bg := style.Get(chroma.Background)
	fg := bg.Colour
	if !fg.IsSet() {
		fg = style.Get(chroma.Text).Colour
	}

	return ThemeColors{
		Theme:      theme,
		Style:      styleName,
		Background: colourString(bg.Background),
		Foreground: colourString(fg),
		Keyword:    colourString(style.Get(chroma.Keyword).Colour),
		String:     colourString(style.Get(chroma.LiteralString).Colour),
		Comment:    colourString(style.Get(chroma.Comment).Colour),
	}, nil
}

// RenderThemeSample renders code as an HTML fragment highlighted in the
// chroma style closest to theme.
func RenderThemeSample(ctx context.Context, theme, code, lang string) (string, error) {
	styleName, ok := highlightThemes[theme]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	src := "~~~~" + lang + "\n" + code + "\n~~~~\n"
	return markdown.NewHighlighter(styleName).ToHTML(ctx, src)
}

func colourString(c chroma.Colour) string {
	if !c.IsSet() {
		return ""
	}
	return c.String()
}
