// Package scanner finds bean descriptors below a source directory.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/toyz/beanconv/internal/errors"
)

// DefaultIncludes selects every XML file
var DefaultIncludes = []string{"**/*.xml"}

// DefaultExcludes skips build output directories
var DefaultExcludes = []string{"**/target/**", "**/build/**", "**/node_modules/**"}

// DescriptorScanner walks a directory tree for descriptor files
type DescriptorScanner struct {
	fs       afero.Fs
	includes []string
	excludes []string
}

// Option configures a DescriptorScanner
type Option func(*DescriptorScanner)

// WithIncludes replaces the include patterns
func WithIncludes(patterns ...string) Option {
	return func(s *DescriptorScanner) {
		if len(patterns) > 0 {
			s.includes = patterns
		}
	}
}

// WithExcludes adds exclude patterns to the defaults
func WithExcludes(patterns ...string) Option {
	return func(s *DescriptorScanner) {
		s.excludes = append(s.excludes, patterns...)
	}
}

// NewDescriptorScanner creates a new scanner over fs
func NewDescriptorScanner(fs afero.Fs, opts ...Option) *DescriptorScanner {
	s := &DescriptorScanner{
		fs:       fs,
		includes: DefaultIncludes,
		excludes: append([]string(nil), DefaultExcludes...),
	}
	for _, opt := range opts {
		opt(s)
	}
	for i, pattern := range s.excludes {
		s.excludes[i] = filepath.ToSlash(pattern)
	}
	return s
}

// Scan returns the sorted paths of all descriptors below root. Patterns are
// matched against the slash-separated path relative to root and against the
// base name. Hidden directories are not entered.
func (s *DescriptorScanner) Scan(root string) ([]string, error) {
	if err := s.validatePatterns(); err != nil {
		return nil, err
	}

	root = filepath.Clean(root)
	info, err := s.fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ScanError(root, "directory does not exist").
				WithSuggestion("Check the source directory argument")
		}
		return nil, errors.WrapScanError(root, err)
	}
	if !info.IsDir() {
		return nil, errors.ScanError(root, "not a directory")
	}

	files := make([]string, 0)
	err = afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if matchesAny(s.includes, rel, info.Name()) && !matchesAny(s.excludes, rel, info.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapScanError(root, err)
	}

	sort.Strings(files)
	return files, nil
}

func (s *DescriptorScanner) validatePatterns() error {
	for _, patterns := range [][]string{s.includes, s.excludes} {
		for _, pattern := range patterns {
			if !doublestar.ValidatePattern(pattern) {
				return errors.ConfigurationError("invalid glob pattern %q", pattern).
					WithSuggestion("Use doublestar syntax, e.g. **/*-context.xml")
			}
		}
	}
	return nil
}

// matchesAny checks patterns against the relative path and the base name
func matchesAny(patterns []string, rel, base string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
