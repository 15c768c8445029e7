package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/filescope/internal/scope"
)

// Relocate rewrites every item at or below OldPath to sit under NewPath.
// It is the manual counterpart of a rename observed by Watch.
func (e *Engine) Relocate(ctx context.Context, req *RelocateRequest) (*RelocateResult, error) {
	if req.OldPath == "" || req.NewPath == "" {
		return nil, fmt.Errorf("%w: old and new paths are required", ErrValidation)
	}

	oldPath := resolvePath(req.OldPath, req.CWD)
	newPath := resolvePath(req.NewPath, req.CWD)
	if scope.SamePath(oldPath, newPath) {
		return nil, fmt.Errorf("%w: old and new paths are the same", ErrValidation)
	}

	moved := 0
	for _, s := range e.registry.Snapshot() {
		for _, item := range s.Items {
			if scope.IsWithin(item.Path, oldPath) {
				moved++
			}
		}
	}
	if moved == 0 {
		return nil, fmt.Errorf("%w: no tracked items at or below %s", ErrNotFound, oldPath)
	}

	e.registry.RelocateItem(oldPath, newPath)

	return &RelocateResult{OldPath: oldPath, NewPath: newPath, Moved: moved}, nil
}

// Prune removes items whose paths no longer exist from every scope.
func (e *Engine) Prune(ctx context.Context, req *PruneRequest) (*PruneResult, error) {
	result := &PruneResult{Missing: []PrunedItem{}, DryRun: req.DryRun}

	var paths []string
	seen := make(map[string]bool)
	for _, s := range e.registry.Snapshot() {
		for _, item := range s.Items {
			exists, err := e.fs.Exists(item.Path)
			if err != nil {
				e.logger.Warn("failed to check item, keeping it", "path", item.Path, "error", err)
				continue
			}
			if exists {
				continue
			}
			result.Missing = append(result.Missing, PrunedItem{Scope: s.Name, Path: item.Path})
			if !seen[item.Path] {
				seen[item.Path] = true
				paths = append(paths, item.Path)
			}
		}
	}

	if req.DryRun || len(paths) == 0 {
		return result, nil
	}

	e.registry.PruneMissing(paths)
	return result, nil
}
