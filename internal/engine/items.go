package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/filescope/internal/scope"
)

// AddPaths adds paths to a scope. Paths that do not exist are still added
// and reported in Missing.
func (e *Engine) AddPaths(ctx context.Context, req *AddPathsRequest) (*AddPathsResult, error) {
	if !e.registry.HasScope(req.Scope) {
		return nil, fmt.Errorf("%w: scope %q", ErrNotFound, req.Scope)
	}

	paths := req.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	result := &AddPathsResult{Added: []scope.Item{}}
	for _, userPath := range paths {
		path := resolvePath(userPath, req.CWD)

		if containsPath(e.registry.ListItems(req.Scope), path) {
			result.AlreadyPresent = append(result.AlreadyPresent, path)
			continue
		}

		exists, err := e.fs.Exists(path)
		if err != nil {
			return nil, fmt.Errorf("failed to check path %s: %w", path, err)
		}
		if !exists {
			result.Missing = append(result.Missing, path)
		}

		e.registry.AddItem(req.Scope, path)
		for _, item := range e.registry.ListItems(req.Scope) {
			if scope.SamePath(item.Path, path) {
				result.Added = append(result.Added, item)
				break
			}
		}
	}

	return result, nil
}

// RemovePaths removes paths from a scope.
func (e *Engine) RemovePaths(ctx context.Context, req *RemovePathsRequest) (*RemovePathsResult, error) {
	if !e.registry.HasScope(req.Scope) {
		return nil, fmt.Errorf("%w: scope %q", ErrNotFound, req.Scope)
	}
	if len(req.Paths) == 0 {
		return nil, fmt.Errorf("%w: at least one path is required", ErrValidation)
	}

	result := &RemovePathsResult{Removed: []string{}}
	for _, userPath := range req.Paths {
		path := resolvePath(userPath, req.CWD)

		if !containsPath(e.registry.ListItems(req.Scope), path) {
			result.NotFound = append(result.NotFound, path)
			continue
		}

		e.registry.RemoveItem(req.Scope, path)
		result.Removed = append(result.Removed, path)
	}

	return result, nil
}

// ListItems lists a scope's items with their current existence on disk.
func (e *Engine) ListItems(ctx context.Context, req *ListItemsRequest) (*ListItemsResult, error) {
	if !e.registry.HasScope(req.Scope) {
		return nil, fmt.Errorf("%w: scope %q", ErrNotFound, req.Scope)
	}

	items := e.registry.ListItems(req.Scope)
	result := &ListItemsResult{Scope: req.Scope, Items: make([]ItemInfo, 0, len(items))}
	for _, item := range items {
		exists, err := e.fs.Exists(item.Path)
		if err != nil {
			e.logger.Warn("failed to check item", "path", item.Path, "error", err)
		}
		result.Items = append(result.Items, ItemInfo{
			Path:    item.Path,
			RelPath: displayPath(item.Path, e.root),
			Kind:    item.Kind,
			Exists:  exists,
		})
	}

	return result, nil
}

func containsPath(items []scope.Item, path string) bool {
	for _, item := range items {
		if scope.SamePath(item.Path, path) {
			return true
		}
	}
	return false
}
