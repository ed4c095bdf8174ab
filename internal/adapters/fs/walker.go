// Package fs provides file system adapters for walking and hashing unit sources.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files under root in lexical order, skipping version
// control directories and any name matching an ignore pattern.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			name := d.Name()

			if d.IsDir() {
				if name == ".git" || name == ".jj" || matchesAny(name, ignores) {
					return filepath.SkipDir
				}
				return nil
			}

			if matchesAny(name, ignores) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
