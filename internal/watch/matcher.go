package watch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher decides which paths below the watch root are ignored.
//
// A pattern matches when it matches the slash-separated path relative to the
// root, or any single element of it. ".git" therefore ignores the directory
// and everything below it, and "*.swp" ignores editor swap files anywhere.
type Matcher struct {
	globs []glob.Glob
}

// NewMatcher compiles the ignore patterns.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether rel, a path relative to the watch root, is ignored.
func (m *Matcher) Match(rel string) bool {
	if m == nil || len(m.globs) == 0 {
		return false
	}

	rel = filepath.ToSlash(filepath.Clean(rel))
	if rel == "." {
		return false
	}

	for _, g := range m.globs {
		if g.Match(rel) {
			return true
		}
		for _, elem := range strings.Split(rel, "/") {
			if g.Match(elem) {
				return true
			}
		}
	}
	return false
}
