package library

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// matchesInclude returns true if the given relative path matches any of the
// include patterns. An empty pattern list includes everything.
func matchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// matchesExclude returns true if the given relative path matches any of the
// exclude patterns. An empty pattern list excludes nothing.
func matchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks relPath against each glob pattern, using doublestar for
// ** support. Patterns are also tried against the bare filename so "*.txt"
// works regardless of folder depth.
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
