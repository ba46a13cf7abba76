package manifest

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory names never descended into.
var DefaultExcludes = []string{
	".git",
	"node_modules",
	"__MACOSX",
	".thumbnails",
	".idea",
	".vscode",
}

// shouldExcludeDir checks whether a directory name matches any default
// exclusion or is hidden. This is used during traversal to skip entire subtrees.
func shouldExcludeDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// IncludePatterns returns the globs that select manifest files: every image
// with one of the given extensions (overlays included) and every text note.
func IncludePatterns(extensions []string) []string {
	exts := make([]string, 0, len(extensions))
	for _, e := range extensions {
		exts = append(exts, strings.TrimPrefix(e, "."))
	}
	return []string{
		"**/*.{" + strings.Join(exts, ",") + "}",
		"**/*.txt",
	}
}

// MatchesInclude returns true if the given relative path matches any of the
// include patterns. If patterns is empty, everything is included.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// MatchesExclude returns true if the given relative path matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks if relPath matches any of the given glob patterns, either
// as a whole or by its base name. Extensions compare case-insensitively.
func matchesAny(relPath string, patterns []string) bool {
	lower := strings.ToLower(relPath)
	base := path.Base(lower)

	for _, pattern := range patterns {
		pattern = strings.ToLower(pattern)
		if matched, err := doublestar.Match(pattern, lower); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
