package main

import (
	"errors"
	"os"

	docmark "github.com/alnah/go-docmark"
	"github.com/alnah/go-docmark/internal/assets"
	"github.com/alnah/go-docmark/internal/config"
	"github.com/alnah/go-docmark/internal/dateutil"
	"github.com/alnah/go-docmark/internal/model"
	"github.com/alnah/go-docmark/internal/pipeline"
)

// Exit codes for the docmark CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // All pages written
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, model, or assets
	ExitIO         = 3 // File not found, permission denied
	ExitRender     = 4 // Markdown backend or page template failure
	ExitUnresolved = 5 // Unresolved references with --strict
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Render errors (exit 4)
	if errors.Is(err, docmark.ErrRender) ||
		errors.Is(err, pipeline.ErrPageRender) {
		return ExitRender
	}

	// Unresolved references (exit 5)
	if errors.Is(err, ErrUnresolved) {
		return ExitUnresolved
	}

	// Usage/config/validation errors (exit 2), checked before I/O so a
	// missing named config is a usage problem
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoModel) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrUnknownStyle) ||
		errors.Is(err, config.ErrCustomReference) ||
		errors.Is(err, config.ErrTooManyReference) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, model.ErrModelParse) ||
		errors.Is(err, model.ErrModelInvalid) ||
		errors.Is(err, docmark.ErrInvalidPrefix) ||
		errors.Is(err, docmark.ErrInvalidURLTemplate) ||
		errors.Is(err, pipeline.ErrBaseURL) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrWritePage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, model.ErrModelNotFound) ||
		errors.Is(err, assets.ErrAssetRead) {
		return ExitIO
	}

	return ExitGeneral
}
