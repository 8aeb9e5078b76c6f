package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-docmark/internal/refs"
)

const sampleProject = `
current: io
modules:
  - name: io
    href: io.html
    items:
      - name: read
        kind: function
        label: io.read()
      - name: File
        kind: type
      - name: lines
        kind: function
        anchor: io-lines
  - name: pl.utils
    href: utils.html
    label: Utilities
    items:
      - name: assert_arg
        kind: function
`

func mustParse(t *testing.T, data string) *Project {
	t.Helper()
	p, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return p
}

// ---------------------------------------------------------------------------
// TestLookup - Name Resolution
// ---------------------------------------------------------------------------

func TestLookup(t *testing.T) {
	t.Parallel()

	p := mustParse(t, sampleProject)

	tests := []struct {
		name      string
		query     string
		isType    bool
		wantName  string
		wantLabel string
		wantHref  string
		wantErr   error
	}{
		{
			name:      "module by name",
			query:     "io",
			wantName:  "io",
			wantLabel: "io",
			wantHref:  "io.html",
		},
		{
			name:      "dotted module name with label",
			query:     "pl.utils",
			wantName:  "pl.utils",
			wantLabel: "Utilities",
			wantHref:  "utils.html",
		},
		{
			name:      "unqualified item in current module",
			query:     "read",
			wantName:  "io.read",
			wantLabel: "io.read()",
			wantHref:  "io.html#read",
		},
		{
			name:      "qualified item",
			query:     "io.lines",
			wantName:  "io.lines",
			wantLabel: "io.lines",
			wantHref:  "io.html#io-lines",
		},
		{
			name:      "item in dotted module",
			query:     "pl.utils.assert_arg",
			wantName:  "pl.utils.assert_arg",
			wantLabel: "pl.utils.assert_arg",
			wantHref:  "utils.html#assert_arg",
		},
		{
			name:      "type hint matches type item",
			query:     "File",
			isType:    true,
			wantName:  "io.File",
			wantLabel: "File",
			wantHref:  "io.html#File",
		},
		{
			name:    "type hint skips non-type item",
			query:   "read",
			isType:  true,
			wantErr: ErrUnknownItem,
		},
		{
			name:    "unknown module",
			query:   "os.exit",
			wantErr: ErrUnknownModule,
		},
		{
			name:    "unknown item",
			query:   "write",
			wantErr: ErrUnknownItem,
		},
		{
			name:    "trailing dot",
			query:   "io.",
			wantErr: ErrUnknownItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ref, err := p.Lookup(tt.query, tt.isType)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Lookup(%q) error = %v, want %v", tt.query, err, tt.wantErr)
				}
				if !errors.Is(err, refs.ErrNotFound) {
					t.Errorf("Lookup(%q) error should also match refs.ErrNotFound", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) unexpected error: %v", tt.query, err)
			}
			if ref.Name != tt.wantName || ref.Label != tt.wantLabel || ref.Href != tt.wantHref {
				t.Errorf("Lookup(%q) = {%q %q %q}, want {%q %q %q}",
					tt.query, ref.Name, ref.Label, ref.Href, tt.wantName, tt.wantLabel, tt.wantHref)
			}
		})
	}
}

func TestCurrentModule_DefaultsToFirst(t *testing.T) {
	t.Parallel()

	p := mustParse(t, "modules:\n  - name: a\n    href: a.html\n  - name: b\n")
	if got := p.CurrentModule().Name; got != "a" {
		t.Errorf("CurrentModule() = %q, want %q", got, "a")
	}
}

func TestLookup_WithResolver(t *testing.T) {
	t.Parallel()

	p := mustParse(t, sampleProject)
	r := refs.NewResolver(p.Lookup)

	ctx := refs.Context{}
	ctx.SetLocal("pl.utils")
	ref, err := r.Resolve("assert_arg", false, ctx)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ref.Href != "utils.html#assert_arg" {
		t.Errorf("Href = %q", ref.Href)
	}
}

// ---------------------------------------------------------------------------
// TestParse - Validation
// ---------------------------------------------------------------------------

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "syntax error", data: "modules: [", wantErr: ErrModelParse},
		{name: "unknown field", data: "modules:\n  - name: a\n    bogus: 1\n", wantErr: ErrModelParse},
		{name: "empty input", data: "", wantErr: ErrModelParse},
		{name: "no modules", data: "current: a\n", wantErr: ErrModelInvalid},
		{name: "module without name", data: "modules:\n  - href: a.html\n", wantErr: ErrModelInvalid},
		{name: "duplicate module", data: "modules:\n  - name: a\n  - name: a\n", wantErr: ErrModelInvalid},
		{name: "item without name", data: "modules:\n  - name: a\n    items:\n      - kind: function\n", wantErr: ErrModelInvalid},
		{name: "unlisted current", data: "current: z\nmodules:\n  - name: a\n", wantErr: ErrModelInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	if err := os.WriteFile(path, []byte(sampleProject), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.CurrentModule().Name != "io" {
		t.Errorf("CurrentModule() = %q, want io", p.CurrentModule().Name)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrModelNotFound", err)
	}
}
