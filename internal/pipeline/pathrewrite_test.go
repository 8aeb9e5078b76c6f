package pipeline

// Notes:
// - Render errors from x/net/html are not covered: rendering a parsed tree
//   into a strings.Builder does not fail

import (
	"errors"
	"strings"
	"testing"
)

func rewrite(t *testing.T, fragment, baseURL string) string {
	t.Helper()
	r, err := NewLinkRewriter(baseURL)
	if err != nil {
		t.Fatalf("NewLinkRewriter(%q) error = %v", baseURL, err)
	}
	got, err := r.Rewrite(fragment)
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	return got
}

// ---------------------------------------------------------------------------
// TestLinkRewriter - Target resolution
// ---------------------------------------------------------------------------

func TestLinkRewriter_Rewrite(t *testing.T) {
	t.Parallel()

	const base = "https://docs.example.com/api/"

	tests := []struct {
		name         string
		html         string
		baseURL      string
		wantContains []string
	}{
		{
			name:         "relative module link rewritten",
			html:         `<a href="mod.html#open">open</a>`,
			baseURL:      base,
			wantContains: []string{`href="https://docs.example.com/api/mod.html#open"`},
		},
		{
			name:         "dot slash link rewritten",
			html:         `<a href="./io.html">io</a>`,
			baseURL:      base,
			wantContains: []string{`href="https://docs.example.com/api/io.html"`},
		},
		{
			name:         "parent link resolved",
			html:         `<a href="../index.html">up</a>`,
			baseURL:      base,
			wantContains: []string{`href="https://docs.example.com/index.html"`},
		},
		{
			name:         "base without trailing slash treated as directory",
			html:         `<a href="mod.html">m</a>`,
			baseURL:      "https://docs.example.com/api",
			wantContains: []string{`href="https://docs.example.com/api/mod.html"`},
		},
		{
			name:         "root-relative base",
			html:         `<a href="mod.html">m</a>`,
			baseURL:      "/docs",
			wantContains: []string{`href="/docs/mod.html"`},
		},
		{
			name:         "relative image rewritten",
			html:         `<img src="img/logo.png">`,
			baseURL:      base,
			wantContains: []string{`src="https://docs.example.com/api/img/logo.png"`},
		},
		{
			name:         "same-page anchor unchanged",
			html:         `<a href="#open">open</a>`,
			baseURL:      base,
			wantContains: []string{`href="#open"`},
		},
		{
			name:         "named anchor unchanged",
			html:         `<a name="usage"></a>`,
			baseURL:      base,
			wantContains: []string{`<a name="usage"></a>`},
		},
		{
			name:         "absolute URL unchanged",
			html:         `<a href="https://example.com/x">x</a>`,
			baseURL:      base,
			wantContains: []string{`href="https://example.com/x"`},
		},
		{
			name:         "protocol-relative URL unchanged",
			html:         `<img src="//cdn.example.com/logo.png">`,
			baseURL:      base,
			wantContains: []string{`src="//cdn.example.com/logo.png"`},
		},
		{
			name:         "mailto unchanged",
			html:         `<a href="mailto:dev@example.com">mail</a>`,
			baseURL:      base,
			wantContains: []string{`href="mailto:dev@example.com"`},
		},
		{
			name:         "root-relative link unchanged",
			html:         `<a href="/abs.html">abs</a>`,
			baseURL:      base,
			wantContains: []string{`href="/abs.html"`},
		},
		{
			name:         "empty base returns unchanged",
			html:         `<a href="mod.html">m</a>`,
			baseURL:      "",
			wantContains: []string{`href="mod.html"`},
		},
		{
			name:         "links inside highlighted code rewritten",
			html:         `<pre class="chroma"><code><a href="mod.html#open">open</a>()</code></pre>`,
			baseURL:      base,
			wantContains: []string{`href="https://docs.example.com/api/mod.html#open"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := rewrite(t, tt.html, tt.baseURL)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Rewrite() = %q, want to contain %q", got, want)
				}
			}
		})
	}
}

func TestLinkRewriter_Fragment(t *testing.T) {
	t.Parallel()

	got := rewrite(t, `<p>Hello</p><a href="mod.html">m</a><p>World</p>`, "https://docs.example.com/")

	if strings.Contains(got, "<html>") || strings.Contains(got, "<body>") {
		t.Errorf("fragment wrapped: %s", got)
	}
	want := `<p>Hello</p><a href="https://docs.example.com/mod.html">m</a><p>World</p>`
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
}

func TestLinkRewriter_PreservesAttributes(t *testing.T) {
	t.Parallel()

	got := rewrite(t, `<a href="mod.html" class="ref" title="Module">m</a>`, "https://docs.example.com/")
	for _, check := range []string{`class="ref"`, `title="Module"`, `href="https://docs.example.com/mod.html"`} {
		if !strings.Contains(got, check) {
			t.Errorf("Should contain %q, got %q", check, got)
		}
	}
}

func TestLinkRewriter_Nil(t *testing.T) {
	t.Parallel()

	r, err := NewLinkRewriter("")
	if err != nil || r != nil {
		t.Fatalf("NewLinkRewriter(\"\") = %v, %v; want nil, nil", r, err)
	}
	const in = `<a href="mod.html">m</a>`
	if got, err := r.Rewrite(in); err != nil || got != in {
		t.Errorf("nil Rewrite() = %q, %v", got, err)
	}
}

// ---------------------------------------------------------------------------
// TestRelativeTarget
// ---------------------------------------------------------------------------

func TestRelativeTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target string
		want   bool
	}{
		{"mod.html", true},
		{"mod.html#open", true},
		{"./a/b.html", true},
		{"../x.html", true},
		{"", false},
		{"#open", false},
		{"/abs.html", false},
		{"//cdn.example.com/x", false},
		{"https://example.com", false},
		{"mailto:a@b.c", false},
		{"data:image/png;base64,AA", false},
	}

	for _, tt := range tests {
		if _, got := relativeTarget(tt.target); got != tt.want {
			t.Errorf("relativeTarget(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestNewLinkRewriter - Base validation
// ---------------------------------------------------------------------------

func TestNewLinkRewriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base    string
		wantErr bool
	}{
		{"", false},
		{"/docs", false},
		{"/docs/", false},
		{"https://example.com/api/", false},
		{"docs/", true},
		{"relative", true},
		{"://bad", true},
	}

	for _, tt := range tests {
		_, err := NewLinkRewriter(tt.base)
		if tt.wantErr {
			if !errors.Is(err, ErrBaseURL) {
				t.Errorf("NewLinkRewriter(%q) = %v, want ErrBaseURL", tt.base, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewLinkRewriter(%q) = %v, want nil", tt.base, err)
		}
	}
}
