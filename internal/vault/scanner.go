package vault

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Scanner walks a vault directory collecting markdown files
type Scanner struct {
	root    string
	exclude []string
}

// NewScanner creates a scanner rooted at root with the given exclude patterns
func NewScanner(root string, exclude []string) *Scanner {
	return &Scanner{root: root, exclude: exclude}
}

// Scan returns the vault-relative paths of all markdown files, in walk
// order. Hidden directories and excluded patterns are skipped.
func (s *Scanner) Scan() ([]string, error) {
	var paths []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if s.excluded(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if s.excluded(rel) {
			return nil
		}

		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk vault: %w", err)
	}

	return paths, nil
}

// excluded reports whether rel matches any exclude pattern
func (s *Scanner) excluded(rel string) bool {
	for _, pattern := range s.exclude {
		matched, err := doublestar.Match(pattern, rel)
		if err == nil && matched {
			return true
		}
	}
	return false
}
