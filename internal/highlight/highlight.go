// Package highlight renders source code to HTML with chroma.
//
// It implements the highlighter collaborator of the multiline preprocessor:
// Highlight(language, sourceName, code, startLine, inline). Output uses CSS
// classes, so pages include the stylesheet produced by WriteCSS.
package highlight

import (
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// Chroma highlights code with chroma lexers and the HTML formatter.
// It is read-only after construction and safe for concurrent use.
type Chroma struct {
	style       *chroma.Style
	lineNumbers bool
}

// Option configures a Chroma highlighter.
type Option func(*Chroma)

// WithStyle selects a chroma style by name. Unknown names use chroma's fallback style.
func WithStyle(name string) Option {
	return func(c *Chroma) {
		c.style = styles.Get(name)
	}
}

// WithLineNumbers numbers block output starting at the block's source line.
func WithLineNumbers(enabled bool) Option {
	return func(c *Chroma) {
		c.lineNumbers = enabled
	}
}

// New creates a Chroma highlighter.
func New(opts ...Option) *Chroma {
	c := &Chroma{style: styles.Get(DefaultStyle)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StyleExists reports whether chroma knows a style by name.
func StyleExists(name string) bool {
	_, ok := styles.Registry[strings.ToLower(name)]
	return ok
}

// StyleNames returns the names of all registered chroma styles, sorted.
func StyleNames() []string {
	return styles.Names()
}

// Highlight renders code. The lexer is chosen by language, then by
// sourceName, then falls back to plain text. Inline output has no
// surrounding <pre>; the caller wraps it.
func (c *Chroma) Highlight(language, sourceName, code string, startLine int, inline bool) string {
	lexer := c.lexer(language, sourceName)

	opts := []chromahtml.Option{chromahtml.WithClasses(true)}
	if inline {
		opts = append(opts, chromahtml.PreventSurroundingPre(true))
	} else if c.lineNumbers {
		opts = append(opts, chromahtml.WithLineNumbers(true), chromahtml.BaseLineNumber(startLine))
	}
	formatter := chromahtml.New(opts...)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return escaped(code, inline)
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, c.style, iterator); err != nil {
		return escaped(code, inline)
	}
	return buf.String()
}

// WriteCSS writes the stylesheet for the configured style.
func (c *Chroma) WriteCSS(w io.Writer) error {
	return chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(w, c.style)
}

func (c *Chroma) lexer(language, sourceName string) chroma.Lexer {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil && sourceName != "" {
		lexer = lexers.Match(sourceName)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// escaped is the output used when chroma cannot tokenise the input.
func escaped(code string, inline bool) string {
	if inline {
		return html.EscapeString(code)
	}
	return "<pre><code>" + html.EscapeString(code) + "</code></pre>"
}
