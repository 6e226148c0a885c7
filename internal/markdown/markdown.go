// Package markdown inspects and renders Markdown sources with goldmark.
//
// Detection walks the parsed AST instead of matching text, so fences inside
// indented code, HTML comments or other fences are not mistaken for real
// code blocks.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// ErrRender indicates goldmark failed to render a sample.
var ErrRender = errors.New("markdown rendering failed")

var parser = goldmark.New(goldmark.WithExtensions(extension.GFM))

// FenceLanguages returns the info-string language of every fenced code
// block in source, in document order. Pandoc attribute fences such as
// "{.mermaid}" report their first class.
func FenceLanguages(source []byte) []string {
	if len(source) == 0 {
		return nil
	}

	doc := parser.Parser().Parse(text.NewReader(source))

	var langs []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fcb, ok := n.(*ast.FencedCodeBlock); ok {
			langs = append(langs, normalizeLanguage(string(fcb.Language(source))))
		}
		return ast.WalkContinue, nil
	})
	return langs
}

// HasFence reports whether source contains a fenced code block in lang
// (case-insensitive).
func HasFence(source []byte, lang string) bool {
	for _, l := range FenceLanguages(source) {
		if strings.EqualFold(l, lang) {
			return true
		}
	}
	return false
}

func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if strings.HasPrefix(lang, "{") {
		lang = strings.Trim(lang, "{}")
		if fields := strings.Fields(lang); len(fields) > 0 {
			lang = fields[0]
		}
		lang = strings.TrimPrefix(lang, ".")
	}
	return lang
}

// Highlighter renders Markdown fragments with inline chroma styles.
type Highlighter struct {
	md goldmark.Markdown
}

// NewHighlighter creates a Highlighter using the named chroma style.
// Unknown styles fall back to chroma's default.
func NewHighlighter(style string) *Highlighter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles so the sample is self-contained
				),
			),
		),
	)
	return &Highlighter{md: md}
}

// ToHTML renders content to an HTML fragment.
// Goldmark has no context support, so rendering runs in a goroutine and
// the call returns early when ctx is done.
func (h *Highlighter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := h.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
