package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alnah/go-docmark/internal/fileutil"
)

// AssetResolver looks assets up in an optional project directory first and
// falls back to the built-in set for names the project does not provide.
type AssetResolver struct {
	custom   Loader // nil without an asset path
	embedded EmbeddedLoader
}

var _ Loader = (*AssetResolver)(nil)

// NewAssetResolver builds a resolver. An empty customBasePath serves only
// built-in assets; an invalid one is an error.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath == "" {
		return r, nil
	}
	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = custom
	return r, nil
}

// Load returns the custom asset when present, else the built-in one.
// Validation and read errors from the custom directory are not masked.
func (r *AssetResolver) Load(kind Kind, name string) (string, error) {
	if r.custom != nil {
		content, err := r.custom.Load(kind, name)
		if !IsNotFound(err) {
			return content, err
		}
	}
	return r.embedded.Load(kind, name)
}

// Resolve accepts either an asset name or a file path. Paths are read
// directly and bypass both loaders.
func (r *AssetResolver) Resolve(kind Kind, nameOrPath string) (string, error) {
	if !fileutil.IsFilePath(nameOrPath) {
		return r.Load(kind, nameOrPath)
	}
	content, err := os.ReadFile(nameOrPath) // #nosec G304 -- user-provided asset path
	if errors.Is(err, fs.ErrNotExist) {
		return "", kind.notFound(nameOrPath)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// Names lists the built-in names of kind, used in hints.
func (r *AssetResolver) Names(kind Kind) []string {
	return r.embedded.Names(kind)
}

// HasCustomLoader reports whether a project asset directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}
