package lib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnoreMatcher(t *testing.T) {
	testCases := []struct {
		name            string
		patterns        []string
		path            string
		isDir           bool
		shouldBeIgnored bool
	}{
		{
			name:            "Specific file match",
			patterns:        []string{"secret.txt"},
			path:            "secret.txt",
			shouldBeIgnored: true,
		},
		{
			name:            "Glob pattern match",
			patterns:        []string{"*.log"},
			path:            "system.log",
			shouldBeIgnored: true,
		},
		{
			name:            "Glob pattern in subdir",
			patterns:        []string{"*.log"},
			path:            "logs/system.log",
			shouldBeIgnored: true,
		},
		{
			name:            "Directory pattern matches contents",
			patterns:        []string{"build/"},
			path:            "build/asset.js",
			shouldBeIgnored: true,
		},
		{
			name:            "Negation pattern",
			patterns:        []string{"*.log", "!important.log"},
			path:            "important.log",
			shouldBeIgnored: false,
		},
		{
			name:            "Negation does not affect other matches",
			patterns:        []string{"*.log", "!important.log"},
			path:            "unimportant.log",
			shouldBeIgnored: true,
		},
		{
			name:            "Comments and blank lines are dropped",
			patterns:        []string{"# comment", "", "   ", "*.tmp"},
			path:            "some.tmp",
			shouldBeIgnored: true,
		},
		{
			name:            "Unmatched path",
			patterns:        []string{"*.log"},
			path:            "src/main.go",
			shouldBeIgnored: false,
		},
		{
			name:            "Windows-style separators in pattern",
			patterns:        []string{"dist\\main.js"},
			path:            "dist/main.js",
			shouldBeIgnored: true,
		},
		{
			name:            "Names starting with two dots are matched",
			patterns:        []string{"*.log"},
			path:            "..hidden.log",
			shouldBeIgnored: true,
		},
		{
			name:            "Paths outside the root are never ignored",
			patterns:        []string{"*.log"},
			path:            "../elsewhere.log",
			shouldBeIgnored: false,
		},
		{
			name:            "Walk root is never ignored",
			patterns:        []string{"*"},
			path:            ".",
			isDir:           true,
			shouldBeIgnored: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			matcher := NewIgnoreMatcher(tc.patterns)
			got := matcher.Ignored(filepath.FromSlash(tc.path), tc.isDir)
			assert.Equal(t, tc.shouldBeIgnored, got, "path %q with patterns %q", tc.path, tc.patterns)
		})
	}
}

func TestNilIgnoreMatcherIgnoresNothing(t *testing.T) {
	var matcher *IgnoreMatcher
	assert.False(t, matcher.Ignored("anything.log", false))
}

func TestLoadIgnoreFile(t *testing.T) {
	t.Run("reads patterns from disk", func(t *testing.T) {
		ignoreFile := filepath.Join(t.TempDir(), ".digestignore")
		require.NoError(t, os.WriteFile(ignoreFile, []byte("# generated\n*.o\nvendor/\n"), 0644))

		matcher, err := LoadIgnoreFile(ignoreFile)

		require.NoError(t, err)
		assert.True(t, matcher.Ignored("main.o", false))
		assert.True(t, matcher.Ignored(filepath.Join("vendor", "lib.go"), false))
		assert.False(t, matcher.Ignored("main.c", false))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadIgnoreFile(filepath.Join(t.TempDir(), "absent"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
