package docmark

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"

	"github.com/alnah/go-docmark/internal/logfields"
	"github.com/alnah/go-docmark/internal/pipeline"
	"github.com/alnah/go-docmark/internal/refs"
	"github.com/alnah/go-docmark/internal/render"
	"github.com/alnah/go-docmark/internal/sections"
)

// Compile-time interface implementation checks.
var (
	_ ErrorSink   = WarnFunc(nil)
	_ Highlighter = HighlighterFunc(nil)
)

// Processor turns documentation text into HTML for one session.
// It is immutable after New and safe for concurrent use.
type Processor struct {
	format          string
	global          string
	defaultLanguage string
	backend         *render.Backend // nil means plain text
	resolver        *refs.Resolver
	preprocessor    *pipeline.Preprocessor
	logger          *slog.Logger
}

// New creates a Processor. The format decides the rendering path:
//   - "plain": paragraph breaks and reference resolution only
//   - "backtick": like plain, with `name` spans as optional references
//   - anything else: a Markdown backend, substituted when unavailable
//
// When no backend can be constructed the Processor falls back to plain text.
func New(opts ...Option) (*Processor, error) {
	cfg := processorConfig{format: DefaultFormat}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.lookup == nil {
		return nil, ErrNoLookup
	}
	if cfg.format == "" {
		cfg.format = DefaultFormat
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.registry == nil {
		cfg.registry = render.Default()
	}

	refOpts, err := cfg.customOptions()
	if err != nil {
		return nil, err
	}

	p := &Processor{
		format:          cfg.format,
		defaultLanguage: cfg.defaultLanguage,
		logger:          cfg.logger,
	}
	if cfg.pkg != "" {
		p.global = cfg.pkg + "."
	}

	switch cfg.format {
	case FormatPlain:
	case FormatBacktick:
		refOpts = append(refOpts, refs.WithBackticks(true))
	default:
		p.backend = p.selectBackend(cfg.registry, cfg.format)
	}

	p.resolver = refs.NewResolver(cfg.lookup, refOpts...)

	preOpts := []pipeline.PreprocessorOption{pipeline.WithGlobalPrefix(p.global)}
	if cfg.highlighter != nil {
		preOpts = append(preOpts, pipeline.WithHighlighter(cfg.highlighter))
	}
	if p.backend != nil {
		preOpts = append(preOpts, pipeline.WithEscapeUnderscores(p.backend.EscapeUnderscores))
	}
	p.preprocessor = pipeline.NewPreprocessor(p.resolver, preOpts...)

	return p, nil
}

// selectBackend returns the backend for format, logging substitutions.
// A nil result means no backend constructs.
func (p *Processor) selectBackend(registry *render.Registry, format string) *render.Backend {
	b, err := registry.Select(format)
	if err != nil {
		p.logger.Warn("no markdown backend available, using plain text",
			logfields.Format(format), logfields.Error(err))
		return nil
	}
	if b.Name != format {
		p.logger.Warn("markdown backend unavailable, substituting",
			logfields.Format(format), logfields.Backend(b.Name))
	}
	return b
}

// Format returns the requested format.
func (p *Processor) Format() string {
	return p.format
}

// Backend returns the name of the selected backend, or FormatPlain.
func (p *Processor) Backend() string {
	if p.backend == nil {
		return FormatPlain
	}
	return p.backend.Name
}

// Process converts text for item. Module and file text is preprocessed
// first; other items only have their references resolved. Resolution
// failures are reported to the item's sink and never abort. A rendering
// failure is returned wrapped in ErrRender.
func (p *Processor) Process(text string, item Item) (string, error) {
	if p.backend == nil {
		return p.ProcessPlain(text, item), nil
	}

	var (
		out   string
		diags []refs.Diagnostic
	)
	if item.Kind.multiline() {
		out, diags = p.preprocessor.Process(text, item.Document, item.SourceName, p.defaultLanguage)
	} else {
		out, diags = p.resolver.ResolveText(text, p.context(), refs.TextOptions{
			EscapeUnderscores: p.backend.EscapeUnderscores,
		})
	}
	p.report(item, diags)

	html, err := p.backend.Render(out)
	if err != nil {
		return "", fmt.Errorf("%s: %w", item.SourceName, err)
	}
	return pipeline.StripOuterParagraph(html), nil
}

// ProcessPlain converts text without a Markdown backend: blank-line pairs
// become paragraph breaks and references are resolved.
func (p *Processor) ProcessPlain(text string, item Item) string {
	broken := pipeline.ParagraphBreaks(text)
	out, diags := p.resolver.ResolveText(broken, p.context(), refs.TextOptions{})
	for i, d := range diags {
		// each break folded a blank line away
		diags[i].Line += strings.Count(broken[:d.Offset], "\n<p>")
	}
	p.report(item, diags)
	return out
}

// Sectionize records the sections of text into a new Document. Anchors use
// goldmark's heading id scheme, deduplicated within the document.
func Sectionize(text string) *sections.Document {
	ids := parser.NewContext().IDs()
	doc := &sections.Document{
		Anchor: func(title string) string {
			return string(ids.Generate([]byte(title), ast.KindHeading))
		},
	}
	sections.AddSections(doc, text)
	return doc
}

func (p *Processor) context() refs.Context {
	return refs.Context{Global: p.global}
}

// report writes diagnostics to the item's sink or the session logger.
func (p *Processor) report(item Item, diags []refs.Diagnostic) {
	for _, d := range diags {
		line := item.firstLine()
		if d.Line > 0 {
			line += d.Line - 1
		}
		if item.Sink != nil {
			item.Sink.Warn(fmt.Sprintf("%s:%d: %s", item.SourceName, line, describe(d)))
			continue
		}
		p.logger.Warn("unresolved reference",
			logfields.Source(item.SourceName),
			logfields.Line(line),
			logfields.Reference(d.Name),
			logfields.Error(d.Err))
	}
}

func describe(d refs.Diagnostic) string {
	if errors.Is(d.Err, refs.ErrNotFound) {
		return fmt.Sprintf("reference not found: %s (%v)", d.Name, d.Err)
	}
	return fmt.Sprintf("cannot resolve %s: %v", d.Name, d.Err)
}
