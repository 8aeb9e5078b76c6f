package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docmark/internal/fileutil"
)

// sourceExtensions are the documentation file extensions picked up by discovery.
var sourceExtensions = []string{".md", ".markdown"}

// pageExtension is the extension of generated pages, without the dot.
const pageExtension = "html"

// ErrInvalidExtension is returned when an explicit input is not a markdown file.
var ErrInvalidExtension = errors.New("file must have .md or .markdown extension")

// FileToBuild represents a single file to process.
type FileToBuild struct {
	InputPath  string
	OutputPath string
}

// discoverFiles expands inputs into source files and their page paths.
// Directories are walked recursively, skipping hidden subdirectories.
func discoverFiles(inputs []string, output string) ([]FileToBuild, error) {
	var files []FileToBuild
	seen := make(map[string]string)

	add := func(f FileToBuild) error {
		if prev, dup := seen[f.OutputPath]; dup {
			return fmt.Errorf("%w: %s and %s both write %s", ErrUsage, prev, f.InputPath, f.OutputPath)
		}
		seen[f.OutputPath] = f.InputPath
		files = append(files, f)
		return nil
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !fileutil.HasExtension(input, sourceExtensions) {
				return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(input))
			}
			outPath, err := resolveOutputPath(input, output, "")
			if err != nil {
				return nil, err
			}
			if err := add(FileToBuild{InputPath: input, OutputPath: outPath}); err != nil {
				return nil, err
			}
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() {
				if path != input && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if !fileutil.HasExtension(path, sourceExtensions) {
				return nil
			}
			outPath, err := resolveOutputPath(path, output, input)
			if err != nil {
				return err
			}
			return add(FileToBuild{InputPath: path, OutputPath: outPath})
		})
		if err != nil {
			return nil, err
		}
	}

	if len(files) > 1 && isPagePath(output) {
		return nil, fmt.Errorf("%w: output %s is a single page but %d files were found", ErrUsage, output, len(files))
	}

	return files, nil
}

// resolveOutputPath determines the page path for a source file.
// Without an output directory the page is written next to the source.
// Under an output directory, files found by walking keep their path
// relative to the walked directory.
func resolveOutputPath(inputPath, output, baseInputDir string) (string, error) {
	page, err := fileutil.ReplaceExt(filepath.Base(inputPath), pageExtension)
	if err != nil {
		return "", err
	}

	if output == "" {
		return filepath.Join(filepath.Dir(inputPath), page), nil
	}

	if isPagePath(output) {
		return output, nil
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(output, filepath.Dir(relPath), page), nil
		}
	}

	return filepath.Join(output, page), nil
}

// isPagePath reports whether output names a single page rather than a directory.
func isPagePath(output string) bool {
	return fileutil.HasExtension(output, []string{"." + pageExtension})
}
