package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrPageRender indicates page template rendering failed.
var ErrPageRender = errors.New("page template rendering failed")

// defaultPageTemplate wraps a rendered documentation fragment in a complete HTML5 document.
const defaultPageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{if .Heading}}<h1>{{.Heading}}</h1>
{{end}}{{.Body}}
{{if .Updated}}<footer>Last updated {{.Updated}}</footer>
{{end}}</body>
</html>
`

var defaultPage = template.Must(template.New("page").Parse(defaultPageTemplate))

// PageData holds the pieces of a standalone documentation page.
type PageData struct {
	Title   string
	Heading string // shown above the body when the body has no title heading
	Body    string // rendered HTML, inserted as-is
	CSS     string
	Updated string // empty omits the footer stamp
}

// PageTemplate renders PageData. Templates see .Title, .Heading and .Updated
// as text and .Body as trusted HTML. It is safe for concurrent use.
type PageTemplate struct {
	tmpl *template.Template
}

// ParsePageTemplate compiles an html/template page layout.
func ParsePageTemplate(text string) (*PageTemplate, error) {
	tmpl, err := template.New("page").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return &PageTemplate{tmpl: tmpl}, nil
}

// Execute renders data into a standalone HTML page and injects its CSS.
func (p *PageTemplate) Execute(data PageData) (string, error) {
	tmpl := defaultPage
	if p != nil && p.tmpl != nil {
		tmpl = p.tmpl
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Title   string
		Heading string
		Body    template.HTML
		Updated string
	}{
		Title:   data.Title,
		Heading: data.Heading,
		Body:    template.HTML(data.Body), //nolint:gosec // body is renderer output
		Updated: data.Updated,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return InjectCSS(buf.String(), data.CSS), nil
}

// AssemblePage renders data with the built-in page layout.
func AssemblePage(data PageData) (string, error) {
	var p *PageTemplate
	return p.Execute(data)
}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
func InjectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
