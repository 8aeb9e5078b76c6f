package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// A single <p>...</p> wrapping the whole rendered fragment.
	outerParagraph = regexp.MustCompile(`(?s)^\s*<p>(.*?)</p>\s*$`)
)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// ParagraphBreaks turns every blank-line pair "\n\n" into "\n<p>". It is the
// only structure the plain processor adds to text.
func ParagraphBreaks(content string) string {
	return strings.ReplaceAll(content, "\n\n", "\n<p>")
}

// StripOuterParagraph removes one redundant <p>...</p> pair when it wraps the
// entire fragment. Fragments with several paragraphs are returned unchanged.
func StripOuterParagraph(content string) string {
	m := outerParagraph.FindStringSubmatch(content)
	if m == nil || strings.Contains(m[1], "<p>") || strings.Contains(m[1], "</p>") {
		return content
	}
	return m[1]
}
