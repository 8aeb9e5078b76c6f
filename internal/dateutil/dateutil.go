// Package dateutil formats the "last updated" stamp of generated pages from
// user-friendly format strings.
package dateutil

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// tokens maps format tokens to Go layout elements. Longer tokens come first
// so matching is greedy; MM is the month and mm the minute.
var tokens = []struct{ token, layout string }{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
}

var presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"datetime": "YYYY-MM-DD HH:mm:ss",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// PresetNames lists the named formats accepted in place of a token format.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// segment is either a Go layout fragment or literal text copied as-is.
type segment struct {
	text   string
	layout bool
}

// Format is a compiled stamp format.
type Format struct {
	segments []segment
}

// Parse compiles a preset name (case-insensitive) or a token format.
// Tokens: YYYY YY MMMM MMM MM M DD D HH mm ss. Text in [brackets] and any
// other character is literal. Literals never reach time.Format, so digits
// and words in them are kept verbatim.
func Parse(format string) (*Format, error) {
	if preset, ok := presets[strings.ToLower(format)]; ok {
		format = preset
	}
	switch {
	case format == "":
		return nil, fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	case len(format) > MaxDateFormatLength:
		return nil, fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	f := &Format{}
	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			f.add(format[i+1:i+1+end], false)
			i += end + 2
			continue
		}
		if layout, n := matchToken(format[i:]); n > 0 {
			f.add(layout, true)
			i += n
			continue
		}
		f.add(format[i:i+1], false)
		i++
	}
	return f, nil
}

func matchToken(s string) (string, int) {
	for _, t := range tokens {
		if strings.HasPrefix(s, t.token) {
			return t.layout, len(t.token)
		}
	}
	return "", 0
}

// add appends text, merging it into the previous segment of the same type.
func (f *Format) add(text string, layout bool) {
	if text == "" {
		return
	}
	if n := len(f.segments); n > 0 && f.segments[n-1].layout == layout {
		f.segments[n-1].text += text
		return
	}
	f.segments = append(f.segments, segment{text: text, layout: layout})
}

// Format renders t.
func (f *Format) Format(t time.Time) string {
	var b strings.Builder
	for _, s := range f.segments {
		if s.layout {
			b.WriteString(t.Format(s.text))
		} else {
			b.WriteString(s.text)
		}
	}
	return b.String()
}

// ValidateStamp checks a stamp format. An empty format is valid and
// disables the stamp.
func ValidateStamp(format string) error {
	if format == "" {
		return nil
	}
	_, err := Parse(format)
	return err
}

// Stamp formats t. An empty format yields an empty stamp.
func Stamp(format string, t time.Time) (string, error) {
	if format == "" {
		return "", nil
	}
	f, err := Parse(format)
	if err != nil {
		return "", err
	}
	return f.Format(t), nil
}
