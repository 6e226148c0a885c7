package markdown

// Notes:
// - Detection tests cover the fence shapes pandoc accepts (backticks,
//   tildes, attribute braces) and the near misses that must not count.

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// FenceLanguages / HasFence
// ---------------------------------------------------------------------------

func TestFenceLanguages(t *testing.T) {
	t.Parallel()

	src := "# Title\n\n```go\nfmt.Println()\n```\n\n~~~mermaid\ngraph TD\n~~~\n\n```{.python .numberLines}\nx = 1\n```\n"
	got := FenceLanguages([]byte(src))
	want := []string{"go", "mermaid", "python"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FenceLanguages() = %v, want %v", got, want)
	}

	if got := FenceLanguages(nil); got != nil {
		t.Errorf("FenceLanguages(nil) = %v, want nil", got)
	}
}

func TestHasFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want bool
	}{
		{name: "backtick fence", src: "```mermaid\ngraph TD\n  A-->B\n```\n", want: true},
		{name: "tilde fence", src: "~~~mermaid\nsequenceDiagram\n~~~\n", want: true},
		{name: "upper case", src: "```Mermaid\ngraph TD\n```\n", want: true},
		{name: "attribute fence", src: "```{.mermaid}\ngraph TD\n```\n", want: true},
		{name: "inside list", src: "- item\n\n  ```mermaid\n  graph TD\n  ```\n", want: true},
		{name: "inline code", src: "Use `mermaid` blocks.\n", want: false},
		{name: "indented code", src: "    ```mermaid\n    graph TD\n    ```\n", want: false},
		{name: "other language", src: "```mermaidx\n```\n", want: false},
		{name: "empty", src: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HasFence([]byte(tt.src), "mermaid"); got != tt.want {
				t.Errorf("HasFence(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Highlighter
// ---------------------------------------------------------------------------

func TestHighlighter_ToHTML(t *testing.T) {
	t.Parallel()

	h := NewHighlighter("monokai")
	got, err := h.ToHTML(context.Background(), "```go\nfunc main() {}\n```\n")
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if !strings.Contains(got, "<pre") {
		t.Errorf("expected <pre> block, got %q", got)
	}
	if !strings.Contains(got, "style=") {
		t.Errorf("expected inline styles, got %q", got)
	}
}

func TestHighlighter_ToHTML_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHighlighter("pygments").ToHTML(ctx, "text")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
