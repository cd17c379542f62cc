package unindex

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
)

// Directories never worth loading, .gitignore or not.
var defaultSkipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	"dist":         {},
	"build":        {},
	"coverage":     {},
	"out":          {},
	".next":        {},
}

// ignoreMatcher decides which paths the loader skips. It combines the
// built-in directory list with the context root's .gitignore, if present.
type ignoreMatcher struct {
	rootDir   string
	gitIgnore gitignore.GitIgnore
}

func newIgnoreMatcher(rootDir string) *ignoreMatcher {
	m := &ignoreMatcher{rootDir: rootDir}

	ignorePath := filepath.Join(rootDir, ".gitignore")
	if _, err := os.Stat(ignorePath); err == nil {
		if gi, err := gitignore.NewFromFile(ignorePath); err == nil {
			m.gitIgnore = gi
		}
	}
	return m
}

func (m *ignoreMatcher) SkipDir(name string) bool {
	if _, ok := defaultSkipDirs[name]; ok {
		return true
	}
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// Ignore reports whether a path should be excluded from loading.
// Matching runs on the path relative to the context root, forward slashes.
func (m *ignoreMatcher) Ignore(absPath string, isDir bool) bool {
	rel, err := filepath.Rel(m.rootDir, absPath)
	if err != nil {
		rel = absPath
	}
	rel = filepath.ToSlash(rel)

	for _, segment := range strings.Split(rel, "/") {
		if m.SkipDir(segment) {
			return true
		}
	}

	if m.gitIgnore != nil {
		if match := m.gitIgnore.Relative(rel, isDir); match != nil && match.Ignore() {
			return true
		}
		// A pattern like "generated/" ignores everything beneath it.
		for dir := path.Dir(rel); dir != "." && dir != "/"; dir = path.Dir(dir) {
			if match := m.gitIgnore.Relative(dir, true); match != nil && match.Ignore() {
				return true
			}
		}
	}
	return false
}
