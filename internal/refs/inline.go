package refs

import (
	"fmt"
	"html"
	"strings"
)

// Placeholder replaces a tag that could not be resolved.
const Placeholder = "???"

const (
	tagOpen  = "@{"
	tagClose = '}'
	tagLabel = "|"
	tagQuote = `\`
)

// TextOptions controls how resolved tags are written.
type TextOptions struct {
	// Code marks highlighted source: labels are never underscore-escaped
	// and backtick spans are left alone.
	Code bool

	// EscapeUnderscores writes "_" in link labels as "\_" for backends
	// that would otherwise read them as emphasis.
	EscapeUnderscores bool
}

// Diagnostic records one tag that failed to resolve.
type Diagnostic struct {
	Line   int    // 1-based line of the tag, 0 when unknown
	Offset int    // byte offset of the tag in the resolved text
	Name   string // name as written in the tag
	Err    error
}

// String formats the diagnostic as "line N: message" or just "message".
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %v", d.Line, d.Err)
	}
	return d.Err.Error()
}

// ResolveText rewrites every @{...} tag in text into a link, a literal, or
// the placeholder. With backtick references on, `name` spans are resolved
// in the same scan: a backtick inside a tag never opens or closes a span,
// and tags inside a span are expanded within its code element.
// Diagnostic lines are relative to text. Failures are returned, never written.
func (r *Resolver) ResolveText(text string, ctx Context, opts TextOptions) (string, []Diagnostic) {
	s := &textScan{r: r, ctx: ctx, opts: opts, text: text}
	s.b.Grow(len(text))
	backticks := r.backticks && !opts.Code

	lit := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '@':
			end, ok := tagAt(text, i)
			if !ok {
				continue
			}
			s.b.WriteString(text[lit:i])
			s.b.WriteString(s.expandTag(i, end))
			i, lit = end-1, end
		case '`':
			if !backticks {
				continue
			}
			end := spanEnd(text, i)
			if end < 0 {
				continue
			}
			s.b.WriteString(text[lit:i])
			s.b.WriteString(s.span(i+1, end))
			i, lit = end, end+1
		}
	}
	s.b.WriteString(text[lit:])
	return s.b.String(), s.diags
}

// textScan is the state of one ResolveText call.
type textScan struct {
	r     *Resolver
	ctx   Context
	opts  TextOptions
	text  string
	b     strings.Builder
	diags []Diagnostic
}

// tagAt returns the end, past the closing brace, of a tag starting at i.
func tagAt(text string, i int) (int, bool) {
	if !strings.HasPrefix(text[i:], tagOpen) {
		return 0, false
	}
	end := strings.IndexByte(text[i+len(tagOpen):], tagClose)
	if end < 0 {
		return 0, false
	}
	return i + len(tagOpen) + end + 1, true
}

// spanEnd returns the backtick closing the span opened at i, or -1.
// Complete tags are skipped so their labels cannot close the span.
func spanEnd(text string, i int) int {
	for j := i + 1; j < len(text); j++ {
		if end, ok := tagAt(text, j); ok {
			j = end - 1
			continue
		}
		if text[j] == '`' {
			return j
		}
	}
	return -1
}

// expandTag produces the replacement for the tag text[start:end].
func (s *textScan) expandTag(start, end int) string {
	body := s.text[start+len(tagOpen) : end-1]
	if quoted, ok := strings.CutPrefix(body, tagQuote); ok {
		return tagOpen + quoted + string(tagClose)
	}

	name, label, _ := strings.Cut(body, tagLabel)
	name = strings.TrimSpace(name)
	label = strings.TrimSpace(label)

	ref, err := s.r.resolveTag(name, s.ctx)
	if err != nil {
		s.diags = append(s.diags, Diagnostic{
			Line:   1 + strings.Count(s.text[:start], "\n"),
			Offset: start,
			Name:   name,
			Err:    err,
		})
		return Placeholder
	}
	if label == "" {
		label = ref.Label
	}
	if label == "" {
		label = name
	}
	return link(ref.Href, escapeLabel(label, s.opts))
}

// span renders the backtick span text[start:end]. A resolving name becomes
// a link labelled with the name, a miss becomes a code element and is
// silent. A span holding tags is code with the tags expanded inside.
func (s *textScan) span(start, end int) string {
	name := s.text[start:end]
	if name == "" {
		return "``"
	}
	if !strings.Contains(name, tagOpen) {
		if ref, err := s.r.Resolve(name, false, s.ctx); err == nil {
			return link(ref.Href, escapeLabel(name, s.opts))
		}
		return "<code>" + escapeLabel(name, s.opts) + "</code>"
	}

	var b strings.Builder
	b.WriteString("<code>")
	lit := start
	for i := start; i < end; i++ {
		tagEnd, ok := tagAt(s.text[:end], i)
		if !ok {
			continue
		}
		b.WriteString(html.EscapeString(s.text[lit:i]))
		b.WriteString(s.expandTag(i, tagEnd))
		i, lit = tagEnd-1, tagEnd
	}
	b.WriteString(html.EscapeString(s.text[lit:end]))
	b.WriteString("</code>")
	return b.String()
}

func link(href, label string) string {
	return `<a href="` + html.EscapeString(href) + `">` + label + `</a>`
}

func escapeLabel(label string, opts TextOptions) string {
	label = html.EscapeString(label)
	if opts.EscapeUnderscores && !opts.Code {
		label = strings.ReplaceAll(label, "_", `\_`)
	}
	return label
}
