package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader serves assets from a project directory laid out as
// {base}/styles/*.css and {base}/templates/*.html.
type FilesystemLoader struct {
	base string // absolute, symlinks resolved
}

var _ Loader = (*FilesystemLoader)(nil)

// NewFilesystemLoader checks that base is a readable directory.
func NewFilesystemLoader(base string) (*FilesystemLoader, error) {
	if base == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	// ReadDir also rejects regular files.
	if _, err := os.ReadDir(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidBasePath, abs, err)
	}
	return &FilesystemLoader{base: abs}, nil
}

// Load reads {base}/{kind dir}/{name}{ext}. A file that resolves outside
// base through a symlink yields ErrPathTraversal.
func (l *FilesystemLoader) Load(kind Kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	target := filepath.Join(l.base, kind.dir(), name+kind.ext())
	if err := l.contain(target); err != nil {
		return "", err
	}

	content, err := os.ReadFile(target) // #nosec G304 -- contained in base
	if errors.Is(err, fs.ErrNotExist) {
		return "", kind.notFound(name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// contain fails when target, after symlink resolution, leaves the base.
// A missing target is left for the read to report.
func (l *FilesystemLoader) contain(target string) error {
	real, err := filepath.EvalSymlinks(target)
	if err != nil {
		return nil
	}
	rel, err := filepath.Rel(l.base, real)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, target, l.base)
	}
	return nil
}
