package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-docmark/internal/dateutil"
	"github.com/alnah/go-docmark/internal/fileutil"
	"github.com/alnah/go-docmark/internal/highlight"
	"github.com/alnah/go-docmark/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrEmptyConfigName  = errors.New("config name cannot be empty")
	ErrConfigParse      = errors.New("failed to parse config")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrUnknownStyle     = errors.New("unknown highlight style")
	ErrCustomReference  = errors.New("invalid custom reference")
	ErrTooManyReference = errors.New("too many custom references")
)

// Field length limits.
const (
	MaxFormatLength   = 32
	MaxPackageLength  = 100
	MaxPathLength     = 4096
	MaxLanguageLength = 32
	MaxStyleLength    = 64
	MaxURLLength      = 2048
	MaxPrefixLength   = 32
	MaxCustomRefs     = 64
)

// Config holds the settings of one documentation session.
type Config struct {
	Format           string            `yaml:"format"`
	Package          string            `yaml:"package"`
	Model            string            `yaml:"model"`
	DefaultLanguage  string            `yaml:"defaultLanguage"`
	Highlight        HighlightConfig   `yaml:"highlight"`
	Output           OutputConfig      `yaml:"output"`
	CustomReferences map[string]string `yaml:"customReferences"` // prefix -> URL template with one %s
}

// HighlightConfig controls code highlighting in multi-line text.
type HighlightConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Style       string `yaml:"style"` // chroma style name (empty = github)
	LineNumbers bool   `yaml:"lineNumbers"`
}

// OutputConfig defines where generated pages go and how they look.
type OutputConfig struct {
	Dir       string `yaml:"dir"`       // empty = next to the source file
	BaseURL   string `yaml:"baseURL"`   // prefix for relative generated links
	Style     string `yaml:"style"`     // page stylesheet name or path (empty = default)
	Template  string `yaml:"template"`  // page template name or path (empty = default)
	AssetPath string `yaml:"assetPath"` // directory overriding built-in styles/templates
	Updated   string `yaml:"updated"`   // "last updated" stamp format (empty = none)
}

// Validate checks field lengths and the highlight and custom reference settings.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"format", c.Format, MaxFormatLength},
		{"package", c.Package, MaxPackageLength},
		{"model", c.Model, MaxPathLength},
		{"defaultLanguage", c.DefaultLanguage, MaxLanguageLength},
		{"highlight.style", c.Highlight.Style, MaxStyleLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"output.baseURL", c.Output.BaseURL, MaxURLLength},
		{"output.style", c.Output.Style, MaxPathLength},
		{"output.template", c.Output.Template, MaxPathLength},
		{"output.assetPath", c.Output.AssetPath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Highlight.Style != "" && !highlight.StyleExists(c.Highlight.Style) {
		return fmt.Errorf("%w: highlight.style %q", ErrUnknownStyle, c.Highlight.Style)
	}

	if err := dateutil.ValidateStamp(c.Output.Updated); err != nil {
		return fmt.Errorf("output.updated: %w", err)
	}

	if len(c.CustomReferences) > MaxCustomRefs {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyReference, len(c.CustomReferences), MaxCustomRefs)
	}
	for _, prefix := range c.CustomPrefixes() {
		if err := validateCustomReference(prefix, c.CustomReferences[prefix]); err != nil {
			return err
		}
	}

	return nil
}

// CustomPrefixes returns the custom reference prefixes in sorted order.
func (c *Config) CustomPrefixes() []string {
	prefixes := make([]string, 0, len(c.CustomReferences))
	for p := range c.CustomReferences {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return prefixes
}

func validateCustomReference(prefix, template string) error {
	field := "customReferences." + prefix
	if prefix == "" || strings.ContainsAny(prefix, ":|{} \t") {
		return fmt.Errorf("%w: prefix %q", ErrCustomReference, prefix)
	}
	if err := validateFieldLength("customReferences prefix", prefix, MaxPrefixLength); err != nil {
		return err
	}
	if err := validateFieldLength(field, template, MaxURLLength); err != nil {
		return err
	}
	if strings.Count(template, "%s") != 1 || strings.Count(template, "%") != 1 {
		return fmt.Errorf("%w: %s must contain exactly one %%s", ErrCustomReference, field)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used without a config file:
// goldmark rendering with highlighting on.
func DefaultConfig() *Config {
	return &Config{
		Format:    "goldmark",
		Highlight: HighlightConfig{Enabled: true},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFile(configPath, cfg, yamlutil.Strict()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order:
// ./name.yaml, ./name.yml, then the same names under ~/.config/docmark/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "docmark", name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
