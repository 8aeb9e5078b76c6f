// Package sections detects heading-level sections in a documentation file
// and records one anchor slot per matching heading line.
package sections

import (
	"strings"
)

// DefaultDepth is the section heading depth used when the first line of a
// document is not a heading.
const DefaultDepth = 2

// Document is the per-file state shared by the sectionizer and the
// multiline preprocessor. It is owned by the caller.
type Document struct {
	// Sections maps a 1-based source line number to its anchor id.
	Sections map[int]string
	// Order lists section line numbers in insertion order.
	Order []int
	// Titles maps a section line number to its heading title.
	Titles map[int]string
	// DisplayName is the title of the first heading, if the document starts with one.
	DisplayName string
	// Anchor supplies the anchor id for a section title. The sectionizer never
	// generates ids itself; a nil Anchor uses the title unchanged.
	Anchor func(title string) string
}

// Section is one recorded heading.
type Section struct {
	Line   int
	Anchor string
	Title  string
}

// AnchorAt returns the anchor recorded for a source line.
func (d *Document) AnchorAt(line int) (string, bool) {
	if d == nil || d.Sections == nil {
		return "", false
	}
	anchor, ok := d.Sections[line]
	return anchor, ok
}

// List returns the recorded sections in line order.
func (d *Document) List() []Section {
	if d == nil {
		return nil
	}
	out := make([]Section, 0, len(d.Order))
	for _, line := range d.Order {
		out = append(out, Section{Line: line, Anchor: d.Sections[line], Title: d.Titles[line]})
	}
	return out
}

func (d *Document) add(line int, title string) {
	anchor := title
	if d.Anchor != nil {
		anchor = d.Anchor(title)
	}
	d.Sections[line] = anchor
	d.Titles[line] = title
	d.Order = append(d.Order, line)
}

// AddSections scans text and records every heading at the document's
// section depth into doc. The depth comes from the first line when it is a
// heading, DefaultDepth otherwise. Later lines need only the hash run. The text is returned unmodified.
func AddSections(doc *Document, text string) string {
	doc.Sections = make(map[int]string)
	doc.Titles = make(map[int]string)
	doc.Order = nil

	depth := DefaultDepth
	for i, line := range strings.Split(text, "\n") {
		if i == 0 {
			if level, title, ok := parseHeading(line); ok {
				depth = level
				doc.DisplayName = cleanTitle(title)
			}
			continue
		}
		title, ok := sectionTitle(line, depth)
		if !ok {
			continue
		}
		if title = cleanTitle(title); title != "" {
			doc.add(i+1, title)
		}
	}
	return text
}

// sectionTitle matches exactly depth hashes followed by anything but a
// further hash. Unlike parseHeading no whitespace is required, so "##Usage"
// is a section at depth 2.
func sectionTitle(line string, depth int) (string, bool) {
	if len(line) <= depth || strings.Count(line[:depth], "#") != depth || line[depth] == '#' {
		return "", false
	}
	return line[depth:], true
}

// parseHeading splits an ATX heading into its depth and raw title.
// The hash run must be followed by whitespace and a non-empty title.
func parseHeading(line string) (level int, title string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level == len(line) {
		return 0, "", false
	}
	if line[level] != ' ' && line[level] != '\t' {
		return 0, "", false
	}
	title = line[level:]
	if strings.TrimSpace(title) == "" {
		return 0, "", false
	}
	return level, title, true
}

// cleanTitle strips, in order, a trailing carriage return, trailing closing
// hashes, and surrounding whitespace.
func cleanTitle(title string) string {
	title = strings.TrimSuffix(title, "\r")
	title = strings.TrimRight(title, " \t")
	title = strings.TrimRight(title, "#")
	return strings.TrimSpace(title)
}
