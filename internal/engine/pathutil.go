package engine

import (
	"path/filepath"
	"strings"
)

// resolvePath resolves a user-provided path (absolute, relative, or
// containing "..") against cwd into a clean absolute path.
func resolvePath(userPath, cwd string) string {
	if filepath.IsAbs(userPath) {
		return filepath.Clean(userPath)
	}
	return filepath.Clean(filepath.Join(cwd, userPath))
}

// displayPath returns path relative to root when it lies inside root, and
// path unchanged otherwise.
func displayPath(path, root string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return path
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
