package main

// Notes:
// - discoverFiles: tests build real directory trees under t.TempDir().
// - resolveOutputPath: pure path logic, tested with a table.

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Page path mapping
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		output  string
		baseDir string
		want    string
	}{
		{"next to source", "docs/guide.md", "", "", filepath.Join("docs", "guide.html")},
		{"markdown extension", "docs/guide.markdown", "", "", filepath.Join("docs", "guide.html")},
		{"into output dir", "docs/guide.md", "site", "", filepath.Join("site", "guide.html")},
		{"single page output", "docs/guide.md", "out/index.html", "", "out/index.html"},
		{"keeps relative path", "docs/api/io.md", "site", "docs", filepath.Join("site", "api", "io.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveOutputPath(tt.input, tt.output, tt.baseDir)
			if err != nil {
				t.Fatalf("resolveOutputPath: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveOutputPath(%q, %q, %q) = %q, want %q", tt.input, tt.output, tt.baseDir, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Directory walking
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "docs/intro.md", "# Intro")
	writeFile(t, dir, "docs/api/io.MD", "# io")
	writeFile(t, dir, "docs/notes.txt", "skip")
	writeFile(t, dir, "docs/.drafts/wip.md", "skip")

	files, err := discoverFiles([]string{filepath.Join(dir, "docs")}, filepath.Join(dir, "site"))
	if err != nil {
		t.Fatalf("discoverFiles: %v", err)
	}

	var got []string
	for _, f := range files {
		rel, _ := filepath.Rel(dir, f.OutputPath)
		got = append(got, filepath.ToSlash(rel))
	}
	sort.Strings(got)
	want := []string{"site/api/io.html", "site/intro.html"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	txt := writeFile(t, dir, "notes.txt", "x")
	a := writeFile(t, dir, "a/page.md", "x")
	b := writeFile(t, dir, "b/page.md", "x")

	tests := []struct {
		name    string
		inputs  []string
		output  string
		wantErr error
	}{
		{"missing input", []string{filepath.Join(dir, "nope.md")}, "", os.ErrNotExist},
		{"explicit non-markdown file", []string{txt}, "", ErrInvalidExtension},
		{"two files to one page", []string{a, b}, filepath.Join(dir, "one.html"), ErrUsage},
		{"two files to same output", []string{a, b}, filepath.Join(dir, "site"), ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := discoverFiles(tt.inputs, tt.output)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("discoverFiles() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
