package assets

import (
	"errors"
	"fmt"
	"strings"
)

// Names of the built-in assets.
const (
	DefaultStyleName    = "default"
	DefaultTemplateName = "default"
)

// Sentinel errors for asset lookups.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("path traversal detected")
)

// Kind selects the asset family: page stylesheets or page templates.
type Kind int

const (
	Style Kind = iota
	Template
)

func (k Kind) String() string {
	if k == Template {
		return "template"
	}
	return "style"
}

// dir is the subdirectory holding assets of this kind.
func (k Kind) dir() string {
	if k == Template {
		return "templates"
	}
	return "styles"
}

func (k Kind) ext() string {
	if k == Template {
		return ".html"
	}
	return ".css"
}

// notFound wraps the kind's not-found sentinel with the requested name.
func (k Kind) notFound(name string) error {
	sentinel := ErrStyleNotFound
	if k == Template {
		sentinel = ErrTemplateNotFound
	}
	return fmt.Errorf("%w: %q", sentinel, name)
}

// Loader loads an asset by bare name (no directory, no extension).
// Implementations return ErrInvalidAssetName for unsafe names and the
// kind's not-found error when nothing matches.
type Loader interface {
	Load(kind Kind, name string) (string, error)
}

// ValidateAssetName rejects names that are empty or carry a separator or a
// dot, so a name can only ever address one file inside an asset directory.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, `/\.`):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// IsNotFound reports whether err is a style or template not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}
