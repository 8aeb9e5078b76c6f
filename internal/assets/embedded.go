package assets

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

var _ Loader = EmbeddedLoader{}

// Load reads a built-in asset.
func (EmbeddedLoader) Load(kind Kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := builtin.ReadFile(path.Join(kind.dir(), name+kind.ext()))
	if err != nil {
		return "", kind.notFound(name)
	}
	return string(content), nil
}

// Names lists the built-in asset names of kind, sorted.
func (EmbeddedLoader) Names(kind Kind) []string {
	entries, err := fs.ReadDir(builtin, kind.dir())
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), kind.ext()); ok {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
