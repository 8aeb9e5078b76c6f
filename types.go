package docmark

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/alnah/go-docmark/internal/pipeline"
	"github.com/alnah/go-docmark/internal/refs"
	"github.com/alnah/go-docmark/internal/render"
	"github.com/alnah/go-docmark/internal/sections"
)

// Format keywords handled without a Markdown backend.
const (
	FormatPlain    = "plain"
	FormatBacktick = "backtick"
)

// DefaultFormat is the backend requested when no format is set.
const DefaultFormat = render.Goldmark

// Kind classifies a documentation item.
type Kind int

const (
	// KindItem is a function, field or other member. Its text is resolved
	// and rendered but not preprocessed.
	KindItem Kind = iota
	// KindModule is a module's top-level documentation.
	KindModule
	// KindFile is a standalone documentation file.
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindFile:
		return "file"
	default:
		return "item"
	}
}

// multiline reports whether text of this kind goes through the preprocessor.
func (k Kind) multiline() bool {
	return k == KindModule || k == KindFile
}

// ErrorSink receives resolution warnings for one item.
type ErrorSink interface {
	Warn(msg string)
}

// WarnFunc adapts a function to ErrorSink.
type WarnFunc func(msg string)

// Warn calls f.
func (f WarnFunc) Warn(msg string) { f(msg) }

// Item describes the documentation being processed.
type Item struct {
	Kind       Kind
	SourceName string
	// Line is the 1-based source line where the text starts. Zero means 1.
	Line int
	// Document holds section anchors for module and file text. May be nil.
	Document *sections.Document
	// Sink receives warnings; nil sends them to the session logger.
	Sink ErrorSink
}

func (it Item) firstLine() int {
	if it.Line < 1 {
		return 1
	}
	return it.Line
}

// Placeholder replaces unresolved reference tags.
const Placeholder = refs.Placeholder

// Highlighter renders source code to markup. See WithHighlighter.
type Highlighter = pipeline.Highlighter

// HighlighterFunc adapts a function to Highlighter.
type HighlighterFunc = pipeline.HighlighterFunc

// LookupFunc resolves a name against the documentation model.
type LookupFunc = refs.LookupFunc

// CustomFunc resolves the part after "prefix:" in a custom reference.
type CustomFunc = refs.CustomFunc

// Reference is a resolved documentation target.
type Reference = refs.Reference

type customRef struct {
	prefix   string
	fn       CustomFunc
	template string
}

type processorConfig struct {
	format          string
	pkg             string
	lookup          LookupFunc
	customs         []customRef
	highlighter     Highlighter
	defaultLanguage string
	logger          *slog.Logger
	registry        *render.Registry
}

// Option configures a Processor.
type Option func(*processorConfig)

// WithFormat selects "plain", "backtick", or a Markdown backend by name.
// An unavailable backend is substituted by the first one that constructs.
func WithFormat(format string) Option {
	return func(c *processorConfig) {
		c.format = strings.ToLower(strings.TrimSpace(format))
	}
}

// WithPackage sets the project package. References retry with "pkg." prepended.
func WithPackage(pkg string) Option {
	return func(c *processorConfig) {
		c.pkg = strings.TrimSuffix(strings.TrimSpace(pkg), ".")
	}
}

// WithLookup sets the documentation model lookup. Required.
func WithLookup(fn LookupFunc) Option {
	return func(c *processorConfig) {
		c.lookup = fn
	}
}

// WithCustomReference registers a resolver for "@{prefix:rest}" tags.
func WithCustomReference(prefix string, fn CustomFunc) Option {
	return func(c *processorConfig) {
		c.customs = append(c.customs, customRef{prefix: prefix, fn: fn})
	}
}

// WithURLTemplate registers a custom reference whose href is template with
// its single "%s" replaced by the escaped rest of the tag.
func WithURLTemplate(prefix, template string) Option {
	return func(c *processorConfig) {
		c.customs = append(c.customs, customRef{prefix: prefix, template: template})
	}
}

// WithHighlighter enables code block highlighting in module and file text.
func WithHighlighter(h Highlighter) Option {
	return func(c *processorConfig) {
		c.highlighter = h
	}
}

// WithDefaultLanguage sets the language of indented code blocks.
func WithDefaultLanguage(lang string) Option {
	return func(c *processorConfig) {
		c.defaultLanguage = lang
	}
}

// WithLogger sets the session logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *processorConfig) {
		c.logger = logger
	}
}

// WithRegistry replaces the built-in backend registry.
func WithRegistry(r *render.Registry) Option {
	return func(c *processorConfig) {
		c.registry = r
	}
}

// customOptions validates custom references and builds their resolvers.
func (c *processorConfig) customOptions() ([]refs.Option, error) {
	opts := make([]refs.Option, 0, len(c.customs))
	for _, cr := range c.customs {
		if cr.prefix == "" || strings.ContainsAny(cr.prefix, ":{}| \t") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPrefix, cr.prefix)
		}
		fn := cr.fn
		if fn == nil {
			if strings.Count(cr.template, "%s") != 1 {
				return nil, fmt.Errorf("%w: %q must contain exactly one %%s", ErrInvalidURLTemplate, cr.template)
			}
			fn = urlTemplate(cr.template)
		}
		opts = append(opts, refs.WithCustom(cr.prefix, fn))
	}
	return opts, nil
}

func urlTemplate(template string) CustomFunc {
	return func(name string) (*Reference, bool) {
		if name == "" {
			return nil, false
		}
		return &Reference{
			Name:  name,
			Label: name,
			Href:  strings.Replace(template, "%s", url.PathEscape(name), 1),
		}, true
	}
}
