// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/docmark/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/docmark") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForModelNotFound returns hints for a missing documentation model.
func ForModelNotFound() string {
	return format("pass --model path/to/model.yaml or set model in the config file")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for unknown highlight style errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnknownFormat returns hints listing the formats that select a renderer.
func ForUnknownFormat(formats []string) string {
	if len(formats) == 0 {
		return ""
	}
	return format("known formats: " + strings.Join(formats, ", "))
}

// ForBaseURL returns hints for a rejected --base-url value.
func ForBaseURL() string {
	return format("use an absolute URL (https://example.com/docs/) or a root path (/docs/)")
}

// ForCustomReference returns hints for invalid custom reference templates.
func ForCustomReference() string {
	return formatHints([]string{
		"use prefix=template, e.g. issue=https://example.com/issues/%s",
		"the template needs exactly one %s",
	})
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
