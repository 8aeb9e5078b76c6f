//go:build !noblackfriday

package render

import (
	"fmt"

	"github.com/russross/blackfriday/v2"
)

// newBlackfriday builds the blackfriday backend. Run returns bytes and has
// no error channel, so a panic inside the renderer is turned into an error.
func newBlackfriday() (*Backend, error) {
	return &Backend{
		Name: Blackfriday,
		render: func(text string) (out string, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("blackfriday: %v", r)
				}
			}()

			// HTMLRenderer keeps per-document state; one per call.
			renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
				Flags: blackfriday.UseXHTML,
			})
			html := blackfriday.Run([]byte(text),
				blackfriday.WithRenderer(renderer),
				blackfriday.WithExtensions(blackfriday.CommonExtensions),
			)
			return string(html), nil
		},
	}, nil
}
