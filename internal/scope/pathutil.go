package scope

import (
	"path/filepath"
	"runtime"
	"strings"
)

// foldCase is true on platforms whose default filesystems are case-insensitive.
var foldCase = runtime.GOOS == "windows" || runtime.GOOS == "darwin"

// CleanPath normalizes a path for storage and comparison.
func CleanPath(p string) string {
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}

func normalizeForCompare(p string) string {
	if foldCase {
		return strings.ToLower(p)
	}
	return p
}

// SamePath reports whether a and b name the same path after cleaning.
func SamePath(a, b string) bool {
	return normalizeForCompare(CleanPath(a)) == normalizeForCompare(CleanPath(b))
}

// IsUnder reports whether path is strictly nested below dir.
func IsUnder(path, dir string) bool {
	_, ok := trimDirPrefix(CleanPath(path), CleanPath(dir))
	return ok
}

// IsWithin reports whether path equals dir or is nested below it.
func IsWithin(path, dir string) bool {
	return SamePath(path, dir) || IsUnder(path, dir)
}

// Rebase moves path from below oldDir to below newDir, keeping the relative
// suffix. ok is false when path is neither oldDir nor nested below it.
func Rebase(path, oldDir, newDir string) (string, bool) {
	path, oldDir, newDir = CleanPath(path), CleanPath(oldDir), CleanPath(newDir)

	if SamePath(path, oldDir) {
		return newDir, true
	}
	rel, ok := trimDirPrefix(path, oldDir)
	if !ok {
		return "", false
	}
	return filepath.Join(newDir, rel), true
}

// trimDirPrefix returns the part of path below dir. Both must be clean.
func trimDirPrefix(path, dir string) (string, bool) {
	if dir == "" {
		return "", false
	}

	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if len(path) <= len(prefix) {
		return "", false
	}
	if normalizeForCompare(path[:len(prefix)]) != normalizeForCompare(prefix) {
		return "", false
	}
	return path[len(prefix):], true
}
