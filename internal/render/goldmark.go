//go:build !nogoldmark

package render

import (
	"bytes"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// newGoldmark builds the goldmark backend. Convert reports failures through
// its error return.
func newGoldmark() (*Backend, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // same classes as the preprocessor's highlighter
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(), // generated anchors and reference links are raw HTML
			html.WithXHTML(),
		),
	)

	return &Backend{
		Name: Goldmark,
		render: func(text string) (string, error) {
			var buf bytes.Buffer
			if err := md.Convert([]byte(text), &buf); err != nil {
				return "", err
			}
			return buf.String(), nil
		},
	}, nil
}
