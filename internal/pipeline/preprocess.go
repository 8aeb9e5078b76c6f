package pipeline

import (
	"html"
	"strings"

	"github.com/alnah/go-docmark/internal/refs"
	"github.com/alnah/go-docmark/internal/sections"
)

// Directives and markers recognized by the preprocessor.
const (
	lookupDirective = "@lookup"
	plainDirective  = "@plain"
	fenceMarker     = "```"

	codeIndent  = 4
	plainIndent = "     " // keeps @plain blocks indented code for the backend
)

// Highlighter renders source code to markup. Inline output carries no
// surrounding block element.
type Highlighter interface {
	Highlight(language, sourceName, code string, startLine int, inline bool) string
}

// HighlighterFunc adapts a function to Highlighter.
type HighlighterFunc func(language, sourceName, code string, startLine int, inline bool) string

// Highlight calls f.
func (f HighlighterFunc) Highlight(language, sourceName, code string, startLine int, inline bool) string {
	return f(language, sourceName, code, startLine, inline)
}

// Preprocessor rewrites multi-line documentation text before it reaches a
// Markdown backend: @lookup directives, fenced and indented code blocks,
// section anchors and inline references.
// It is read-only after construction and safe for concurrent use.
type Preprocessor struct {
	resolver          *refs.Resolver
	global            string
	highlighter       Highlighter
	escapeUnderscores bool
}

// PreprocessorOption configures a Preprocessor.
type PreprocessorOption func(*Preprocessor)

// WithGlobalPrefix sets the session-wide qualification prefix ("pkg.").
func WithGlobalPrefix(prefix string) PreprocessorOption {
	return func(p *Preprocessor) {
		p.global = prefix
	}
}

// WithHighlighter enables code block handling. Without a highlighter, fences
// and indented blocks are ordinary text.
func WithHighlighter(h Highlighter) PreprocessorOption {
	return func(p *Preprocessor) {
		p.highlighter = h
	}
}

// WithEscapeUnderscores escapes underscores in link labels of text lines.
func WithEscapeUnderscores(enabled bool) PreprocessorOption {
	return func(p *Preprocessor) {
		p.escapeUnderscores = enabled
	}
}

// NewPreprocessor creates a Preprocessor resolving references with resolver.
func NewPreprocessor(resolver *refs.Resolver, opts ...PreprocessorOption) *Preprocessor {
	p := &Preprocessor{resolver: resolver}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs one forward pass over text. doc may be nil; when set, its
// section anchors are emitted before their source lines. Each call starts
// with an empty local lookup prefix.
func (p *Preprocessor) Process(text string, doc *sections.Document, sourceName, defaultLanguage string) (string, []refs.Diagnostic) {
	run := &docRun{
		p:        p,
		ctx:      refs.Context{Global: p.global},
		doc:      doc,
		source:   sourceName,
		language: defaultLanguage,
	}
	sc := newLineCursor(text)

	for sc.advance(); sc.ok; {
		line := sc.line

		if token, ok := parseLookup(line); ok {
			run.ctx.SetLocal(token)
			sc.advance()
			continue
		}
		if p.highlighter != nil {
			if tag, ok := parseFence(line); ok {
				run.fenced(sc, tag)
				continue
			}
			if !isBlank(line) && indentWidth(line) >= codeIndent {
				run.indented(sc)
				continue
			}
		}
		run.text(line, sc.num)
		sc.advance()
	}

	return strings.Join(run.out, "\n"), run.diags
}

// lineCursor walks lines one at a time; num is the 1-based number of line.
type lineCursor struct {
	lines []string
	next  int
	line  string
	num   int
	ok    bool
}

func newLineCursor(text string) *lineCursor {
	return &lineCursor{lines: strings.Split(text, "\n")}
}

func (c *lineCursor) advance() bool {
	if c.next >= len(c.lines) {
		c.ok, c.line = false, ""
		return false
	}
	c.line = c.lines[c.next]
	c.next++
	c.num = c.next
	c.ok = true
	return true
}

// docRun is the mutable state of one Process call.
type docRun struct {
	p        *Preprocessor
	ctx      refs.Context
	doc      *sections.Document
	source   string
	language string
	out      []string
	diags    []refs.Diagnostic
}

func (r *docRun) emit(lines ...string) {
	r.out = append(r.out, lines...)
}

// resolve expands the tags in text, whose first line is line.
func (r *docRun) resolve(text string, line int, opts refs.TextOptions) string {
	out, diags := r.p.resolver.ResolveText(text, r.ctx, opts)
	for _, d := range diags {
		d.Line = line + d.Line - 1
		r.diags = append(r.diags, d)
	}
	return out
}

// text handles an ordinary line: anchor first, then inline references.
func (r *docRun) text(line string, num int) {
	if anchor, ok := r.doc.AnchorAt(num); ok {
		r.emit(`<a name="` + html.EscapeString(anchor) + `"></a>`)
	}
	r.emit(r.resolve(line, num, refs.TextOptions{EscapeUnderscores: r.p.escapeUnderscores}))
}

// fenced consumes a fenced block starting at the cursor. An empty tag
// passes the block through untouched; otherwise the code is highlighted.
// A missing closing fence ends the block at end of text.
func (r *docRun) fenced(sc *lineCursor, tag string) {
	opening := sc.line
	start := sc.num + 1

	var code []string
	closed := false
	for sc.advance() {
		if _, ok := parseFence(sc.line); ok {
			closed = true
			break
		}
		code = append(code, sc.line)
	}
	closing := fenceMarker
	if closed {
		closing = sc.line
		sc.advance()
	}

	if tag == "" {
		r.emit(opening)
		r.emit(code...)
		r.emit(closing)
		return
	}

	language := strings.Fields(tag)[0]
	highlighted := r.p.highlighter.Highlight(language, r.source, strings.Join(code, "\n"), start, true)
	body := r.resolve(highlighted, start, refs.TextOptions{Code: true})
	r.emit(`<pre class="chroma"><code class="language-` + html.EscapeString(language) + `">` + body + `</code></pre>`)
}

// indented consumes an indented code block starting at the cursor. Blank
// lines continue the block; the first non-blank line indented by fewer than
// four columns ends it and is left at the cursor.
func (r *docRun) indented(sc *lineCursor) {
	startIndent := indentWidth(sc.line)
	start := sc.num

	if strings.TrimSpace(sc.line) == plainDirective {
		for sc.advance() && continuesBlock(sc.line) {
			if isBlank(sc.line) {
				r.emit("")
				continue
			}
			r.emit(plainIndent + dedent(sc.line, startIndent))
		}
		return
	}

	var code []string
	for ok := true; ok && continuesBlock(sc.line); ok = sc.advance() {
		code = append(code, dedent(sc.line, startIndent))
	}

	trimmed := 0
	for len(code) > 1 && isBlank(code[len(code)-1]) {
		code = code[:len(code)-1]
		trimmed++
	}

	highlighted := r.p.highlighter.Highlight(r.language, r.source, strings.Join(code, "\n"), start, false)
	r.emit(r.resolve(highlighted, start, refs.TextOptions{Code: true}))
	for ; trimmed > 0; trimmed-- {
		r.emit("")
	}
}

// parseLookup matches "@lookup <token>", tolerating surrounding whitespace.
func parseLookup(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != lookupDirective {
		return "", false
	}
	return fields[1], true
}

// parseFence matches a fence line and returns its trimmed language tag.
func parseFence(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, fenceMarker)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func continuesBlock(line string) bool {
	return isBlank(line) || indentWidth(line) >= codeIndent
}

// expandTabs replaces each tab with four spaces.
func expandTabs(line string) string {
	return strings.ReplaceAll(line, "\t", "    ")
}

// indentWidth is the leading whitespace run after tab expansion.
func indentWidth(line string) int {
	line = expandTabs(line)
	return len(line) - len(strings.TrimLeft(line, " "))
}

// dedent removes up to n columns of leading indentation after tab expansion.
func dedent(line string, n int) string {
	line = expandTabs(line)
	if w := indentWidth(line); w < n {
		n = w
	}
	return line[n:]
}

// isBlank returns true if the line is empty or contains only whitespace.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
