package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docmark/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// sessionFlags holds flags that shape reference resolution and rendering.
type sessionFlags struct {
	format   string
	pkg      string
	model    string
	language string
	refs     []string // prefix=template
}

// highlightFlags holds code highlighting flags.
type highlightFlags struct {
	style       string
	lineNumbers bool
	disabled    bool
}

// pageFlags holds page assembly flags.
type pageFlags struct {
	baseURL   string
	style     string
	template  string
	assetPath string
	updated   string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common    commonFlags
	output    string
	workers   int
	strict    bool
	session   sessionFlags
	highlight highlightFlags
	page      pageFlags

	// set records which flags were given on the command line.
	set func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addSessionFlags adds session flags to a FlagSet.
func addSessionFlags(fs *flag.FlagSet, f *sessionFlags) {
	fs.StringVarP(&f.format, "format", "f", "", "markup format: plain, backtick, goldmark, blackfriday, minimal")
	fs.StringVarP(&f.pkg, "package", "p", "", "package name stripped from global references")
	fs.StringVarP(&f.model, "model", "m", "", "project model file (YAML)")
	fs.StringVar(&f.language, "language", "", "default language of untagged code blocks")
	fs.StringArrayVar(&f.refs, "ref", nil, "custom reference prefix=URL template with one %s (repeatable)")
}

// addHighlightFlags adds highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.StringVar(&f.style, "highlight-style", "", "chroma style name")
	fs.BoolVar(&f.lineNumbers, "line-numbers", false, "number highlighted code blocks")
	fs.BoolVar(&f.disabled, "no-highlight", false, "disable code highlighting")
}

// addPageFlags adds page assembly flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.baseURL, "base-url", "", "absolute or root-relative prefix for relative links")
	fs.StringVar(&f.style, "style", "", "page stylesheet name or file path")
	fs.StringVar(&f.template, "template", "", "page template name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.updated, "updated", "", "\"last updated\" footer format (preset or tokens)")
}

// newBuildFlagSet creates the build FlagSet bound to f.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory, or .html file for a single input")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.strict, "strict", false, "fail when references cannot be resolved")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addSessionFlags(fs, &f.session)
	addHighlightFlags(fs, &f.highlight)
	addPageFlags(fs, &f.page)

	f.set = fs.Changed
	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printBuildUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// mergeFlags applies command-line values over cfg. Empty string flags keep
// the config value; boolean flags apply only when given.
func mergeFlags(f *buildFlags, cfg *config.Config) error {
	mergeString(&cfg.Format, f.session.format)
	mergeString(&cfg.Package, f.session.pkg)
	mergeString(&cfg.Model, f.session.model)
	mergeString(&cfg.DefaultLanguage, f.session.language)

	mergeString(&cfg.Highlight.Style, f.highlight.style)
	if f.changed("line-numbers") {
		cfg.Highlight.LineNumbers = f.highlight.lineNumbers
	}
	if f.highlight.disabled {
		cfg.Highlight.Enabled = false
	}

	mergeString(&cfg.Output.Dir, f.output)
	mergeString(&cfg.Output.BaseURL, f.page.baseURL)
	mergeString(&cfg.Output.Style, f.page.style)
	mergeString(&cfg.Output.Template, f.page.template)
	mergeString(&cfg.Output.AssetPath, f.page.assetPath)
	mergeString(&cfg.Output.Updated, f.page.updated)

	for _, ref := range f.session.refs {
		prefix, template, ok := strings.Cut(ref, "=")
		if !ok {
			return fmt.Errorf("%w: --ref %q must be prefix=template", config.ErrCustomReference, ref)
		}
		if cfg.CustomReferences == nil {
			cfg.CustomReferences = make(map[string]string)
		}
		cfg.CustomReferences[prefix] = template
	}

	return nil
}

func (f *buildFlags) changed(name string) bool {
	return f.set != nil && f.set(name)
}

func mergeString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
