package main

// Notes:
// - Environment variables are injected through Environment.Getenv, so tests
//   run in parallel without t.Setenv.
// - applyEnvConfig: env values override the config file; unset ones keep it.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-docmark/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"DOCMARK_CONFIG":     "/etc/docmark.yaml",
		"DOCMARK_FORMAT":     "blackfriday",
		"DOCMARK_PACKAGE":    "pl",
		"DOCMARK_MODEL":      "model.yaml",
		"DOCMARK_OUTPUT_DIR": "site",
		"DOCMARK_BASE_URL":   "/docs/",
		"DOCMARK_STYLE":      "dark",
		"DOCMARK_WORKERS":    "4",
	}
	env, _, _ := testEnv(vars)

	got := loadEnvConfig(env.Getenv)
	want := &envConfig{
		ConfigPath: "/etc/docmark.yaml",
		Format:     "blackfriday",
		Package:    "pl",
		Model:      "model.yaml",
		OutputDir:  "site",
		BaseURL:    "/docs/",
		Style:      "dark",
		Workers:    4,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvConfig_InvalidWorkers(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"abc", "-2", "0", "1.5"} {
		env, _, _ := testEnv(map[string]string{"DOCMARK_WORKERS": value})
		if got := loadEnvConfig(env.Getenv).Workers; got != 0 {
			t.Errorf("DOCMARK_WORKERS=%q gave Workers = %d, want 0", value, got)
		}
	}
}

func TestLoadEnvConfig_WorkersCapped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  int
	}{
		{value: "32", want: MaxWorkers},
		{value: "33", want: MaxWorkers},
		{value: "100000", want: MaxWorkers},
		{value: "31", want: 31},
	}

	for _, tt := range tests {
		env, _, _ := testEnv(map[string]string{"DOCMARK_WORKERS": tt.value})
		got := loadEnvConfig(env.Getenv).Workers
		if got != tt.want {
			t.Errorf("DOCMARK_WORKERS=%q gave Workers = %d, want %d", tt.value, got, tt.want)
		}
		if err := validateWorkers(got); err != nil {
			t.Errorf("DOCMARK_WORKERS=%q gave invalid count: %v", tt.value, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"DOCMARK_MODEL=model.yaml",
		"DOCMARK_OUTPUTDIR=site",
		"HOME=/root",
		"DOCMARK_STYEL=dark",
	})

	out := buf.String()
	for _, want := range []string{"DOCMARK_OUTPUTDIR", "DOCMARK_STYEL"} {
		if !strings.Contains(out, want) {
			t.Errorf("warnings should name %s, got %q", want, out)
		}
	}
	if strings.Contains(out, "DOCMARK_MODEL") || strings.Contains(out, "HOME") {
		t.Errorf("known or foreign variables should not warn, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env over config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Package = "fromfile"
	cfg.Output.Style = "default"

	applyEnvConfig(&envConfig{
		Format:    "minimal",
		Model:     "env-model.yaml",
		OutputDir: "out",
		Style:     "dark",
	}, cfg)

	if cfg.Format != "minimal" {
		t.Errorf("Format = %q, want minimal", cfg.Format)
	}
	if cfg.Package != "fromfile" {
		t.Errorf("Package = %q, unset env should keep the config value", cfg.Package)
	}
	if cfg.Model != "env-model.yaml" || cfg.Output.Dir != "out" || cfg.Output.Style != "dark" {
		t.Errorf("env values not applied: %+v", cfg)
	}
}
