package main

// Notes:
// - runDoctor: backends are probed through private registries so results do
//   not depend on build tags. Config and model checks use temp files.
// - Output formats: we test markers in the text report and JSON decoding.

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-docmark/internal/render"
)

func stubRegistry(available map[string]bool) *render.Registry {
	r := render.NewRegistry()
	for _, name := range []string{render.Goldmark, render.Blackfriday, render.Minimal} {
		name := name
		ok := available[name]
		r.Register(name, func() (*render.Backend, error) {
			if !ok {
				return nil, fmt.Errorf("%w: %s", render.ErrUnavailable, name)
			}
			return render.NewBackend(name, false, func(s string) (string, error) { return s, nil }), nil
		})
	}
	return r
}

// ---------------------------------------------------------------------------
// TestRunDoctor - Diagnostic checks
// ---------------------------------------------------------------------------

func TestRunDoctor(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	modelPath := writeFile(t, dir, "model.yaml", testModel)
	goodConfig := writeFile(t, dir, "good.yaml", fmt.Sprintf("model: %s\n", modelPath))
	badModelConfig := writeFile(t, dir, "badmodel.yaml", "model: "+filepath.Join(dir, "missing.yaml")+"\n")

	all := map[string]bool{render.Goldmark: true, render.Blackfriday: true, render.Minimal: true}

	tests := []struct {
		name       string
		available  map[string]bool
		config     string
		wantStatus string
		wantIn     []string // substrings of warnings+errors
	}{
		{
			name:       "ready with config and model",
			available:  all,
			config:     goodConfig,
			wantStatus: "ready",
		},
		{
			name:       "no model warns",
			available:  all,
			wantStatus: "warnings",
			wantIn:     []string{"No model configured"},
		},
		{
			name:       "configured backend unavailable warns",
			available:  map[string]bool{render.Minimal: true},
			config:     goodConfig,
			wantStatus: "warnings",
			wantIn:     []string{`"goldmark" is unavailable`},
		},
		{
			name:       "missing model is an error",
			available:  all,
			config:     badModelConfig,
			wantStatus: "errors",
			wantIn:     []string{"Model:"},
		},
		{
			name:       "missing config is an error",
			available:  all,
			config:     filepath.Join(dir, "nope.yaml"),
			wantStatus: "errors",
			wantIn:     []string{"Config:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := runDoctor(stubRegistry(tt.available), tt.config)

			if r.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q (warnings=%v errors=%v)", r.Status, tt.wantStatus, r.Warnings, r.Errors)
			}
			notes := strings.Join(append(append([]string{}, r.Warnings...), r.Errors...), "\n")
			for _, want := range tt.wantIn {
				if !strings.Contains(notes, want) {
					t.Errorf("diagnostics should mention %q, got:\n%s", want, notes)
				}
			}
			if len(r.Backends) != 3 {
				t.Errorf("Backends = %d entries, want 3", len(r.Backends))
			}
			if len(r.Styles) == 0 {
				t.Error("Styles should list the built-in page styles")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Command output and exit status
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(nil)
	if err := runDoctorCmd([]string{"--json"}, env); err != nil {
		t.Fatalf("runDoctorCmd: %v", err)
	}

	var got doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if got.Status == "" || got.Env.OS == "" || len(got.Backends) == 0 {
		t.Errorf("JSON report incomplete: %+v", got)
	}
}

func TestRunDoctorCmd_Text(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(nil)
	if err := runDoctorCmd(nil, env); err != nil {
		t.Fatalf("runDoctorCmd: %v", err)
	}
	for _, want := range []string{"docmark doctor", "Markdown backends", "Page styles", "Status:"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRunDoctorCmd_ErrorsFail(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv(map[string]string{"DOCMARK_CONFIG": "./does-not-exist.yaml"})
	err := runDoctorCmd(nil, env)
	if !errors.Is(err, ErrDoctorFailed) {
		t.Errorf("runDoctorCmd() = %v, want ErrDoctorFailed", err)
	}
}
