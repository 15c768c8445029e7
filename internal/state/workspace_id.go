package state

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

// ComputeWorkspaceID computes a stable workspace ID from the repository
// fingerprint and the workspace path relative to the repository root.
// Equivalent spellings of the same workspace path ("", ".", "a/./b") map to
// the same ID.
func ComputeWorkspaceID(repoFingerprint, workspacePath string) string {
	normalized := filepath.ToSlash(filepath.Clean(workspacePath))

	hash := sha256.Sum256([]byte(repoFingerprint + "|" + normalized))
	return hex.EncodeToString(hash[:])
}
