// Package gitx locates the workspace a path belongs to.
//
// A workspace is the nearest ancestor directory containing a .git entry.
// Its fingerprint namespaces persisted scope state so that two checkouts of
// the same project keep separate scopes.
package gitx

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotInRepo is returned by Discover when no ancestor contains .git.
var ErrNotInRepo = errors.New("not in a git repository")

// GitRepo provides an abstraction for workspace discovery.
type GitRepo interface {
	// Discover finds the git repository root starting from cwd.
	Discover(cwd string) (root string, err error)

	// Fingerprint computes a stable fingerprint for the workspace root.
	Fingerprint(root string) (string, error)

	// RelPath computes the relative path from root to the given absolute path.
	RelPath(root, absPath string) (string, error)
}

// RealGitRepo implements GitRepo using the filesystem and the git binary.
type RealGitRepo struct{}

// NewRealGitRepo creates a new RealGitRepo.
func NewRealGitRepo() *RealGitRepo {
	return &RealGitRepo{}
}

// Discover finds the git repository root by walking up from cwd looking for .git.
func (g *RealGitRepo) Discover(cwd string) (string, error) {
	absPath, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absPath
	for {
		// .git can be a directory or a file (worktrees/submodules)
		if info, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			if info.IsDir() || info.Mode().IsRegular() {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNotInRepo
		}
		current = parent
	}
}

// Fingerprint hashes the absolute root together with the origin URL, when
// one is configured.
func (g *RealGitRepo) Fingerprint(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	return fingerprint(absRoot, originURL(absRoot)), nil
}

// RelPath computes the relative path from root to absPath.
func (g *RealGitRepo) RelPath(root, absPath string) (string, error) {
	return relPath(root, absPath)
}

func originURL(root string) string {
	cmd := exec.Command("git", "config", "--get", "remote.origin.url")
	cmd.Dir = root
	output, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

func fingerprint(absRoot, remoteURL string) string {
	hash := sha256.Sum256([]byte(absRoot + "|" + remoteURL))
	return hex.EncodeToString(hash[:])
}

func relPath(root, absPath string) (string, error) {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(absPath))
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside workspace %q", absPath, root)
	}
	return rel, nil
}

// FakeGitRepo implements GitRepo with predetermined values for testing.
type FakeGitRepo struct {
	root        string
	fingerprint string
	err         error
}

// NewFakeGitRepo creates a new FakeGitRepo.
func NewFakeGitRepo(root, fingerprint string) *FakeGitRepo {
	return &FakeGitRepo{root: root, fingerprint: fingerprint}
}

// SetError sets an error to be returned by Discover and Fingerprint.
func (g *FakeGitRepo) SetError(err error) {
	g.err = err
}

// Discover returns the predetermined root.
func (g *FakeGitRepo) Discover(cwd string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.root, nil
}

// Fingerprint returns the predetermined fingerprint.
func (g *FakeGitRepo) Fingerprint(root string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.fingerprint, nil
}

// RelPath computes the relative path like the real implementation.
func (g *FakeGitRepo) RelPath(root, absPath string) (string, error) {
	return relPath(root, absPath)
}
