package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	docmark "github.com/alnah/go-docmark"
	"github.com/alnah/go-docmark/internal/assets"
	"github.com/alnah/go-docmark/internal/config"
	"github.com/alnah/go-docmark/internal/dateutil"
	"github.com/alnah/go-docmark/internal/highlight"
	"github.com/alnah/go-docmark/internal/hints"
	"github.com/alnah/go-docmark/internal/logfields"
	"github.com/alnah/go-docmark/internal/model"
	"github.com/alnah/go-docmark/internal/pipeline"
	"github.com/alnah/go-docmark/internal/render"
)

// Sentinel errors for the build command.
var (
	ErrUsage      = errors.New("invalid usage")
	ErrNoInput    = errors.New("no input specified")
	ErrNoModel    = errors.New("no project model specified")
	ErrReadSource = errors.New("failed to read source file")
	ErrWritePage  = errors.New("failed to write page")
	ErrUnresolved = errors.New("unresolved references")
)

// session holds everything shared by the files of one build.
// It is read-only once built.
type session struct {
	proc    *docmark.Processor
	page    *pipeline.PageTemplate
	css     string
	links   *pipeline.LinkRewriter
	updated string
	logger  *slog.Logger
}

// runBuildCmd parses build flags and runs the build.
func runBuildCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if isHelpRequest(err) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return runBuild(ctx, positional, flags, env)
}

// runBuild orchestrates one build: config, session, discovery, batch.
func runBuild(ctx context.Context, inputs []string, flags *buildFlags, env *Environment) error {
	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	configureMaxProcs(logger)

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadBuildConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return fmt.Errorf("%w%s", err, hints.ForCustomReference())
	}
	if err := validateBuildConfig(cfg); err != nil {
		return err
	}

	if len(inputs) == 0 {
		return fmt.Errorf("%w: pass source files or directories", ErrNoInput)
	}

	files, err := discoverFiles(inputs, cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, strings.Join(inputs, ", "))
	}

	if !render.Default().Has(cfg.Format) && cfg.Format != docmark.FormatPlain && cfg.Format != docmark.FormatBacktick {
		fmt.Fprintf(env.Stderr, "warning: unknown format %q, using the first available backend%s\n",
			cfg.Format, hints.ForUnknownFormat(knownFormats()))
	}

	sess, err := newSession(cfg, logger, env.Now())
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := resolvePoolSize(workers)
	logger.Debug("building",
		logfields.Format(cfg.Format),
		logfields.Backend(sess.proc.Backend()),
		logfields.Workers(poolSize),
		slog.Int("files", len(files)))

	start := time.Now()
	results := buildBatch(ctx, sess, files, poolSize)
	logger.Debug("build finished", logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))

	summary := printResults(results, flags.common.quiet, flags.common.verbose, env)
	return batchError(results, summary, flags.strict)
}

// loadBuildConfig loads the config named by the flag, then DOCMARK_CONFIG,
// or returns the defaults when neither is set.
func loadBuildConfig(nameOrPath string, env *envConfig) (*config.Config, error) {
	if nameOrPath == "" {
		nameOrPath = env.ConfigPath
	}
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(nameOrPath)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// validateBuildConfig validates the merged config and attaches hints.
func validateBuildConfig(cfg *config.Config) error {
	err := cfg.Validate()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, config.ErrUnknownStyle):
		return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(highlight.StyleNames()))
	case errors.Is(err, config.ErrCustomReference):
		return fmt.Errorf("%w%s", err, hints.ForCustomReference())
	default:
		return err
	}
}

// newSession loads the model and assets and constructs the processor.
func newSession(cfg *config.Config, logger *slog.Logger, now time.Time) (*session, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w%s", ErrNoModel, hints.ForModelNotFound())
	}
	project, err := model.Load(cfg.Model)
	if err != nil {
		if errors.Is(err, model.ErrModelNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForModelNotFound())
		}
		return nil, err
	}

	links, err := pipeline.NewLinkRewriter(cfg.Output.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForBaseURL())
	}

	updated, err := dateutil.Stamp(cfg.Output.Updated, now)
	if err != nil {
		return nil, fmt.Errorf("output.updated: %w", err)
	}

	opts := []docmark.Option{
		docmark.WithFormat(cfg.Format),
		docmark.WithPackage(cfg.Package),
		docmark.WithLookup(project.Lookup),
		docmark.WithDefaultLanguage(cfg.DefaultLanguage),
		docmark.WithLogger(logger),
	}
	for _, prefix := range cfg.CustomPrefixes() {
		opts = append(opts, docmark.WithURLTemplate(prefix, cfg.CustomReferences[prefix]))
	}

	var css strings.Builder
	if cfg.Highlight.Enabled {
		hl := highlight.New(
			highlight.WithStyle(styleOrDefault(cfg.Highlight.Style)),
			highlight.WithLineNumbers(cfg.Highlight.LineNumbers))
		opts = append(opts, docmark.WithHighlighter(hl))
		if err := hl.WriteCSS(&css); err != nil {
			return nil, fmt.Errorf("writing highlight stylesheet: %w", err)
		}
	}

	proc, err := docmark.New(opts...)
	if err != nil {
		if errors.Is(err, docmark.ErrInvalidPrefix) || errors.Is(err, docmark.ErrInvalidURLTemplate) {
			return nil, fmt.Errorf("%w%s", err, hints.ForCustomReference())
		}
		return nil, err
	}

	pageCSS, page, err := loadPageAssets(cfg.Output)
	if err != nil {
		return nil, err
	}

	return &session{
		proc:    proc,
		page:    page,
		css:     pageCSS + "\n" + css.String(),
		links:   links,
		updated: updated,
		logger:  logger,
	}, nil
}

// loadPageAssets resolves the page stylesheet and template by name or path.
func loadPageAssets(out config.OutputConfig) (string, *pipeline.PageTemplate, error) {
	resolver, err := assets.NewAssetResolver(out.AssetPath)
	if err != nil {
		return "", nil, fmt.Errorf("asset path: %w", err)
	}

	styleName := out.Style
	if styleName == "" {
		styleName = assets.DefaultStyleName
	}
	css, err := resolver.Resolve(assets.Style, styleName)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return "", nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(resolver.Names(assets.Style)))
		}
		return "", nil, err
	}

	templateName := out.Template
	if templateName == "" {
		templateName = assets.DefaultTemplateName
	}
	text, err := resolver.Resolve(assets.Template, templateName)
	if err != nil {
		return "", nil, err
	}
	page, err := pipeline.ParsePageTemplate(text)
	if err != nil {
		return "", nil, fmt.Errorf("template %s: %w", templateName, err)
	}

	return css, page, nil
}

// batchError turns batch results into the command's error. Render
// failures take precedence, then other failures, then warnings in strict mode.
func batchError(results []BuildResult, summary ResultSummary, strict bool) error {
	for _, r := range results {
		if isRenderError(r.Err) {
			return r.Err
		}
	}
	if summary.Failed > 0 {
		for _, r := range results {
			if r.Err != nil && !errors.Is(r.Err, context.Canceled) {
				return fmt.Errorf("%d build(s) failed: %w", summary.Failed, r.Err)
			}
		}
		return fmt.Errorf("%d build(s) failed: %w", summary.Failed, context.Canceled)
	}
	if strict && summary.Warnings > 0 {
		return fmt.Errorf("%w: %d warning(s)", ErrUnresolved, summary.Warnings)
	}
	return nil
}

// knownFormats lists every accepted format keyword.
func knownFormats() []string {
	return append([]string{docmark.FormatPlain, docmark.FormatBacktick}, render.Default().Names()...)
}

func styleOrDefault(name string) string {
	if name == "" {
		return highlight.DefaultStyle
	}
	return name
}
