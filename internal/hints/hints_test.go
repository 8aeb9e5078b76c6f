package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
		excludes string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			contains: "--config",
			excludes: "create",
		},
		{
			name:     "with user config path",
			paths:    []string{"./foo.yaml", "/home/u/.config/docmark/foo.yaml"},
			contains: "create /home/u/.config/docmark/foo.yaml",
		},
		{
			name:     "only local paths",
			paths:    []string{"./foo.yaml", "./foo.yml"},
			contains: "--config",
			excludes: "create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)

			if !strings.Contains(hint, "hint:") {
				t.Error("expected hint prefix")
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
			if tt.excludes != "" && strings.Contains(hint, tt.excludes) {
				t.Errorf("hint should not contain %q, got %q", tt.excludes, hint)
			}
		})
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		available []string
		wantEmpty bool
		contains  string
	}{
		{
			name:      "empty available",
			available: []string{},
			wantEmpty: true,
		},
		{
			name:      "with styles",
			available: []string{"github", "monokai"},
			contains:  "github, monokai",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForStyleNotFound(tt.available)

			if tt.wantEmpty && hint != "" {
				t.Errorf("expected empty hint, got %q", hint)
			}
			if !tt.wantEmpty && !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForUnknownFormat(t *testing.T) {
	t.Parallel()

	if got := ForUnknownFormat(nil); got != "" {
		t.Errorf("ForUnknownFormat(nil) = %q, want empty", got)
	}

	hint := ForUnknownFormat([]string{"plain", "backtick", "goldmark"})
	if !strings.Contains(hint, "plain, backtick, goldmark") {
		t.Errorf("expected format list, got %q", hint)
	}
}

func TestForCustomReference(t *testing.T) {
	t.Parallel()

	hint := ForCustomReference()

	if !strings.Contains(hint, "issue=https://example.com/issues/%s") {
		t.Errorf("expected example template, got %q", hint)
	}
	if strings.Count(hint, "hint:") != 1 {
		t.Errorf("expected a single hint line, got %q", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	// All hints should start with newline, spaces, and "hint:"
	hints := []string{
		ForModelNotFound(),
		ForOutputDirectory(),
		ForBaseURL(),
		ForCustomReference(),
		ForConfigNotFound(nil),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
