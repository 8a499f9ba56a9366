// Package gallery exposes a directory of bundled example structures.
package gallery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Example is one structure file available in the examples directory.
type Example struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
}

// Gallery lists structure files under a directory, filtered by
// include/exclude glob patterns.
type Gallery struct {
	dir     string
	include []string
	exclude []string
}

// New creates a Gallery rooted at dir.
func New(dir string, include, exclude []string) *Gallery {
	return &Gallery{dir: dir, include: include, exclude: exclude}
}

// List returns the matching examples, sorted by name. A missing examples
// directory yields an empty list rather than an error: the gallery is
// optional.
func (g *Gallery) List() ([]Example, error) {
	examples := []Example{}

	err := filepath.WalkDir(g.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(g.dir, path)
		if err != nil {
			return err
		}
		if !g.matches(rel) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		examples = append(examples, Example{Name: filepath.ToSlash(rel), SizeBytes: info.Size()})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return examples, nil
		}
		return nil, fmt.Errorf("scanning examples directory %s: %w", g.dir, err)
	}

	sort.Slice(examples, func(i, j int) bool { return examples[i].Name < examples[j].Name })
	return examples, nil
}

// Open reads one example by its List name. Names that escape the examples
// directory or do not match the configured globs are rejected.
func (g *Gallery) Open(name string) ([]byte, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("invalid example name %q", name)
	}
	if !g.matches(clean) {
		return nil, fmt.Errorf("example %q is not in the gallery", name)
	}

	data, err := os.ReadFile(filepath.Join(g.dir, clean))
	if err != nil {
		return nil, fmt.Errorf("reading example %s: %w", name, err)
	}
	return data, nil
}

// matches applies the include globs first, then the exclude globs.
// Empty include patterns mean everything is included.
func (g *Gallery) matches(relPath string) bool {
	if len(g.include) > 0 && !matchesAny(relPath, g.include) {
		return false
	}
	return !matchesAny(relPath, g.exclude)
}

// matchesAny checks if relPath matches any of the given glob patterns.
// It uses doublestar for ** support and also tries the bare filename so
// patterns like "*.cif" work at any depth.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}

		base := filepath.Base(normalized)
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
