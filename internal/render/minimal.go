package render

import (
	"html"
	"strconv"
	"strings"
)

// escapable lists the characters a backslash makes literal.
const escapable = "\\`*_{}[]()#+-.!<>|"

// newMinimal builds the built-in renderer. It always constructs. It covers
// headings, paragraphs, lists, fenced and indented code, code spans, emphasis, inline
// links and raw HTML. Emphasis matching is naive, so raw underscores in
// link labels must be escaped.
func newMinimal() (*Backend, error) {
	return &Backend{
		Name:              Minimal,
		EscapeUnderscores: true,
		render: func(text string) (string, error) {
			return renderMinimal(text), nil
		},
	}, nil
}

type minimalWriter struct {
	b       strings.Builder
	para    []string
	items   []string
	listTag string
}

func (w *minimalWriter) flushPara() {
	if len(w.para) == 0 {
		return
	}
	w.b.WriteString("<p>" + renderInline(strings.Join(w.para, "\n")) + "</p>\n")
	w.para = nil
}

func (w *minimalWriter) flushList() {
	if len(w.items) == 0 {
		return
	}
	w.b.WriteString("<" + w.listTag + ">\n")
	for _, item := range w.items {
		w.b.WriteString("<li>" + renderInline(item) + "</li>\n")
	}
	w.b.WriteString("</" + w.listTag + ">\n")
	w.items, w.listTag = nil, ""
}

func (w *minimalWriter) flush() {
	w.flushPara()
	w.flushList()
}

func renderMinimal(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	w := &minimalWriter{}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			w.flush()

		case strings.HasPrefix(trimmed, "```"):
			w.flush()
			i = w.fence(lines, i)

		case strings.HasPrefix(trimmed, "<pre"):
			w.flush()
			for ; i < len(lines); i++ {
				w.b.WriteString(lines[i] + "\n")
				if strings.Contains(lines[i], "</pre>") {
					break
				}
			}

		case indentWidth(line) >= 4 && len(w.para) == 0 && len(w.items) == 0:
			w.flush()
			var code []string
			for ; i < len(lines); i++ {
				if strings.TrimSpace(lines[i]) != "" && indentWidth(lines[i]) < 4 {
					break
				}
				code = append(code, dedent(lines[i], 4))
			}
			i--
			for len(code) > 1 && strings.TrimSpace(code[len(code)-1]) == "" {
				code = code[:len(code)-1]
			}
			w.b.WriteString("<pre><code>" + html.EscapeString(strings.Join(code, "\n")) + "\n</code></pre>\n")

		default:
			if level, title, ok := heading(trimmed); ok {
				w.flush()
				tag := "h" + strconv.Itoa(level)
				w.b.WriteString("<" + tag + ">" + renderInline(title) + "</" + tag + ">\n")
				continue
			}
			if tag, item, ok := listItem(trimmed); ok {
				w.flushPara()
				if w.listTag != "" && w.listTag != tag {
					w.flushList()
				}
				w.listTag = tag
				w.items = append(w.items, item)
				continue
			}
			if len(w.para) == 0 && onlyTags(trimmed) {
				w.flush()
				w.b.WriteString(trimmed + "\n")
				continue
			}
			if len(w.items) > 0 {
				w.items[len(w.items)-1] += "\n" + trimmed
				continue
			}
			w.para = append(w.para, trimmed)
		}
	}
	w.flush()
	return w.b.String()
}

// fence writes the fenced block opening at lines[i] and returns the index
// of its closing line. The body is kept verbatim apart from the opening
// fence's own indentation; an unclosed fence runs to the end of text.
func (w *minimalWriter) fence(lines []string, i int) int {
	indent := indentWidth(lines[i])
	opening := strings.TrimSpace(lines[i])
	marker := opening[:len(opening)-len(strings.TrimLeft(opening, "`"))]
	info := strings.Fields(opening[len(marker):])

	var code []string
	for i++; i < len(lines); i++ {
		closing := strings.TrimSpace(lines[i])
		if strings.HasPrefix(closing, marker) && strings.Trim(closing, "`") == "" {
			break
		}
		code = append(code, dedent(lines[i], indent))
	}

	w.b.WriteString("<pre><code")
	if len(info) > 0 {
		w.b.WriteString(` class="language-` + html.EscapeString(info[0]) + `"`)
	}
	w.b.WriteString(">")
	if len(code) > 0 {
		w.b.WriteString(html.EscapeString(strings.Join(code, "\n")) + "\n")
	}
	w.b.WriteString("</code></pre>\n")
	return i
}

// renderInline handles escapes, code spans, raw tags, entities, emphasis and links.
func renderInline(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && strings.IndexByte(escapable, s[i+1]) >= 0:
			b.WriteString(html.EscapeString(s[i+1 : i+2]))
			i += 2
			continue

		case c == '`':
			if end := strings.IndexByte(s[i+1:], '`'); end >= 0 {
				b.WriteString("<code>" + html.EscapeString(s[i+1:i+1+end]) + "</code>")
				i += end + 2
				continue
			}

		case c == '<':
			if end := tagEnd(s, i); end > 0 {
				b.WriteString(s[i:end])
				i = end
				continue
			}
			b.WriteString("&lt;")
			i++
			continue

		case c == '>':
			b.WriteString("&gt;")
			i++
			continue

		case c == '&':
			if end := entityEnd(s, i); end > 0 {
				b.WriteString(s[i:end])
				i = end
				continue
			}
			b.WriteString("&amp;")
			i++
			continue

		case c == '*' || c == '_':
			delim := s[i : i+1]
			if i+1 < len(s) && s[i+1] == c {
				delim = s[i : i+2]
			}
			rest := s[i+len(delim):]
			if end := strings.Index(rest, delim); end > 0 {
				tag := "em"
				if len(delim) == 2 {
					tag = "strong"
				}
				b.WriteString("<" + tag + ">" + renderInline(rest[:end]) + "</" + tag + ">")
				i += 2*len(delim) + end
				continue
			}

		case c == '[':
			if label, href, n, ok := inlineLink(s[i:]); ok {
				b.WriteString(`<a href="` + html.EscapeString(href) + `">` + renderInline(label) + `</a>`)
				i += n
				continue
			}
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// tagEnd returns the index just past a raw HTML tag starting at s[i], or -1.
func tagEnd(s string, i int) int {
	if i+1 >= len(s) || s[i] != '<' {
		return -1
	}
	next := s[i+1]
	if next != '/' && next != '!' && !isLetter(next) {
		return -1
	}
	end := strings.IndexByte(s[i:], '>')
	if end < 0 {
		return -1
	}
	return i + end + 1
}

// onlyTags reports whether line is one or more raw tags with nothing between them.
func onlyTags(line string) bool {
	i := 0
	for i < len(line) {
		end := tagEnd(line, i)
		if end < 0 {
			return false
		}
		i = end
	}
	return i > 0
}

// entityEnd returns the index just past an HTML entity starting at s[i], or -1.
func entityEnd(s string, i int) int {
	for j := i + 1; j < len(s) && j-i <= 10; j++ {
		switch c := s[j]; {
		case c == ';':
			if j > i+1 {
				return j + 1
			}
			return -1
		case c == '#' || isLetter(c) || (c >= '0' && c <= '9'):
		default:
			return -1
		}
	}
	return -1
}

// inlineLink parses [label](href) at the start of s.
func inlineLink(s string) (label, href string, n int, ok bool) {
	closeLabel := strings.Index(s, "](")
	if closeLabel < 1 {
		return "", "", 0, false
	}
	closeHref := strings.IndexByte(s[closeLabel+2:], ')')
	if closeHref < 0 {
		return "", "", 0, false
	}
	label = s[1:closeLabel]
	if strings.ContainsAny(label, "[]") {
		return "", "", 0, false
	}
	href = strings.TrimSpace(s[closeLabel+2 : closeLabel+2+closeHref])
	return label, href, closeLabel + 2 + closeHref + 1, true
}

func heading(line string) (level int, title string, ok bool) {
	for level < len(line) && level < 6 && line[level] == '#' {
		level++
	}
	if level == 0 || level >= len(line) || line[level] != ' ' {
		return 0, "", false
	}
	title = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(line[level:]), "#"))
	return level, title, true
}

func listItem(line string) (tag, item string, ok bool) {
	if len(line) > 2 && strings.ContainsRune("-*+", rune(line[0])) && line[1] == ' ' {
		return "ul", strings.TrimSpace(line[2:]), true
	}
	digits := 0
	for digits < len(line) && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits+1 < len(line) && line[digits] == '.' && line[digits+1] == ' ' {
		return "ol", strings.TrimSpace(line[digits+2:]), true
	}
	return "", "", false
}

func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4 - width%4
		default:
			return width
		}
	}
	return width
}

func dedent(line string, n int) string {
	line = strings.ReplaceAll(line, "\t", "    ")
	for i := 0; i < n && len(line) > 0 && line[0] == ' '; i++ {
		line = line[1:]
	}
	return line
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
