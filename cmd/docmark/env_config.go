package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-docmark/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // DOCMARK_CONFIG: config file name or path
	Format     string // DOCMARK_FORMAT: markup format
	Package    string // DOCMARK_PACKAGE: package name
	Model      string // DOCMARK_MODEL: project model file
	OutputDir  string // DOCMARK_OUTPUT_DIR: output directory
	BaseURL    string // DOCMARK_BASE_URL: link prefix
	Style      string // DOCMARK_STYLE: page stylesheet name or path
	Workers    int    // DOCMARK_WORKERS: parallel workers
}

// knownEnvVars lists valid DOCMARK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCMARK_CONFIG":     true,
	"DOCMARK_FORMAT":     true,
	"DOCMARK_PACKAGE":    true,
	"DOCMARK_MODEL":      true,
	"DOCMARK_OUTPUT_DIR": true,
	"DOCMARK_BASE_URL":   true,
	"DOCMARK_STYLE":      true,
	"DOCMARK_WORKERS":    true,
}

// loadEnvConfig reads the recognized DOCMARK_* values.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("DOCMARK_CONFIG"),
		Format:     getenv("DOCMARK_FORMAT"),
		Package:    getenv("DOCMARK_PACKAGE"),
		Model:      getenv("DOCMARK_MODEL"),
		OutputDir:  getenv("DOCMARK_OUTPUT_DIR"),
		BaseURL:    getenv("DOCMARK_BASE_URL"),
		Style:      getenv("DOCMARK_STYLE"),
	}

	// Invalid or non-positive values are ignored; large ones are capped
	if workers := getenv("DOCMARK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = min(w, MaxWorkers)
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized DOCMARK_* variable.
// Helps catch typos like DOCMARK_OUTPUTDIR instead of DOCMARK_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "DOCMARK_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies set environment values over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	mergeString(&cfg.Format, env.Format)
	mergeString(&cfg.Package, env.Package)
	mergeString(&cfg.Model, env.Model)
	mergeString(&cfg.Output.Dir, env.OutputDir)
	mergeString(&cfg.Output.BaseURL, env.BaseURL)
	mergeString(&cfg.Output.Style, env.Style)
}
