// Package notes renders collection description notes.
//
// Notes are plain text files that may use Markdown. Rendering keeps single
// line breaks, since most notes are written as plain text, and never passes
// raw HTML through.
package notes

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Placeholder is shown in place of an empty note.
const Placeholder = "No description"

// Renderer converts note text to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer returns a Renderer with GFM and code highlighting enabled.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
			),
		),
	}
}

// HTML renders text. Blank text renders the placeholder.
func (r *Renderer) HTML(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		text = "_" + Placeholder + "_"
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("converting note: %w", err)
	}
	return buf.String(), nil
}

// Text returns text, or the placeholder when it is blank.
func Text(text string) string {
	if strings.TrimSpace(text) == "" {
		return Placeholder
	}
	return text
}
