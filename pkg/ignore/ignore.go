// Package ignore provides gitignore-based file filtering using go-git
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher filters content paths with gitignore semantics
type Matcher struct {
	matcher gitignore.Matcher
}

// NewMatcher creates a matcher rooted at the content root with layered
// ignore files:
// 1. .gitignore and related git ignore files (foundation)
// 2. .manifestignore in the content root (tree overrides)
// 3. ~/.manifestgen/.manifestignore (user overrides)
func NewMatcher(contentRoot string) (*Matcher, error) {
	fs := osfs.New(contentRoot)

	var allPatterns []gitignore.Pattern

	// Always ignored regardless of user patterns
	defaultPatterns := []string{".git/**"}
	for _, pattern := range defaultPatterns {
		allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
	}

	// Layer 1: standard gitignore patterns (foundation)
	// ReadPatterns with nil reads .gitignore, global excludes, and .git/info/exclude
	if gitPatterns, err := gitignore.ReadPatterns(fs, nil); err == nil {
		allPatterns = append(allPatterns, gitPatterns...)
	}

	// Layer 2: .manifestignore patterns (tree overrides)
	if treePatterns, err := readIgnoreFile(filepath.Join(contentRoot, ".manifestignore")); err == nil {
		for _, pattern := range treePatterns {
			allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
		}
	}

	// Layer 3: user-level ~/.manifestgen/.manifestignore patterns
	if homeDir, err := os.UserHomeDir(); err == nil {
		userIgnorePath := filepath.Join(homeDir, ".manifestgen", ".manifestignore")
		if userPatterns, err := readIgnoreFile(userIgnorePath); err == nil {
			for _, pattern := range userPatterns {
				allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
			}
		}
	}

	return &Matcher{
		matcher: gitignore.NewMatcher(allPatterns),
	}, nil
}

// readIgnoreFile reads patterns from a text file (like .manifestignore)
func readIgnoreFile(path string) ([]string, error) {
	// Only allow reading known ignore files in controlled locations
	cleaned := filepath.Clean(path)
	if !strings.HasSuffix(cleaned, string(os.PathSeparator)+".manifestignore") {
		return nil, fmt.Errorf("disallowed ignore file path: %s", cleaned)
	}
	content, err := os.ReadFile(cleaned) // #nosec G304 -- path cleaned and allowlisted
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}

	return patterns, nil
}

// IsIgnored reports whether a root-relative file path matches the ignore patterns
func (m *Matcher) IsIgnored(rel string) bool {
	pathParts := splitPath(filepath.ToSlash(rel))
	if len(pathParts) == 0 {
		return false
	}
	return m.matcher.Match(pathParts, false)
}

// IsIgnoredDir reports whether a root-relative directory should be skipped during traversal
func (m *Matcher) IsIgnoredDir(rel string) bool {
	pathParts := splitPath(filepath.ToSlash(rel))
	if len(pathParts) == 0 {
		return false
	}
	return m.matcher.Match(pathParts, true)
}

// splitPath converts a slash-separated path into components for go-git matching
func splitPath(path string) []string {
	if path == "" || path == "." {
		return []string{}
	}

	path = strings.TrimPrefix(path, "/")
	parts := strings.Split(path, "/")

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}

	return result
}
