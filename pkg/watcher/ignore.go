package watcher

import (
	"fmt"
	"path"
	"strings"
)

// matcher decides which root-relative paths are skipped. A pattern matches
// the whole slash-separated relative path or any single component of it, so
// ".git" hides the directory and everything below it.
type matcher struct {
	patterns []string
}

func newMatcher(patterns []string) (*matcher, error) {
	for _, p := range patterns {
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
	}
	return &matcher{patterns: patterns}, nil
}

func (m *matcher) ignored(rel string) bool {
	if rel == "." || rel == "" {
		return false
	}
	for _, p := range m.patterns {
		if ok, _ := path.Match(p, rel); ok {
			return true
		}
		for _, part := range strings.Split(rel, "/") {
			if ok, _ := path.Match(p, part); ok {
				return true
			}
		}
	}
	return false
}
