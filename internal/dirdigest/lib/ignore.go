package lib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/denormal/go-gitignore"
)

// IgnoreMatcher decides whether paths below a walk root are excluded from the
// digest, using gitignore syntax. A nil *IgnoreMatcher ignores nothing.
type IgnoreMatcher struct {
	matcher gitignore.GitIgnore
}

// LoadIgnoreFile reads gitignore-style patterns from ignoreFile.
func LoadIgnoreFile(ignoreFile string) (*IgnoreMatcher, error) {
	content, err := os.ReadFile(ignoreFile)
	if err != nil {
		return nil, fmt.Errorf("could not read ignore file %s: %w", ignoreFile, err)
	}
	return NewIgnoreMatcher(strings.Split(string(content), "\n")), nil
}

// NewIgnoreMatcher compiles raw pattern lines into a matcher.
func NewIgnoreMatcher(lines []string) *IgnoreMatcher {
	patterns := cleanPatterns(lines)

	matcher := gitignore.New(
		strings.NewReader(strings.Join(patterns, "\n")),
		"",
		// Keep parsing past malformed lines.
		func(err gitignore.Error) bool { return true },
	)
	if matcher == nil {
		matcher = gitignore.New(strings.NewReader(""), "", nil)
	}

	return &IgnoreMatcher{matcher: matcher}
}

// Ignored reports whether relativePath, given relative to the walk root, is excluded.
func (m *IgnoreMatcher) Ignored(relativePath string, isDir bool) bool {
	if m == nil {
		return false
	}
	if relativePath == "." || isOutsideRoot(relativePath) {
		return false
	}

	// The gitignore library expects forward-slash separators, even on Windows.
	match := m.matcher.Relative(filepath.ToSlash(relativePath), isDir)
	if match == nil {
		return false
	}
	return match.Ignore()
}

func isOutsideRoot(relativePath string) bool {
	return relativePath == ".." || strings.HasPrefix(relativePath, ".."+string(filepath.Separator))
}

// cleanPatterns drops comments and blank lines, normalises separators and
// turns bare directory patterns into globs over their contents.
func cleanPatterns(lines []string) []string {
	var patterns []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		trimmed = strings.ReplaceAll(trimmed, "\\", "/")
		if strings.HasSuffix(trimmed, "/") && !strings.HasSuffix(trimmed, "**/") {
			trimmed += "**"
		}
		patterns = append(patterns, trimmed)
	}
	return patterns
}
