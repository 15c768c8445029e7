package engine

import (
	"context"
	"fmt"
	"strings"
)

// CreateScope creates a named scope. Creating an existing scope succeeds
// with Created set to false.
func (e *Engine) CreateScope(ctx context.Context, req *CreateScopeRequest) (*CreateScopeResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: scope name is required", ErrValidation)
	}

	existed := e.registry.HasScope(name)
	e.registry.CreateScope(name)

	return &CreateScopeResult{Name: name, Created: !existed}, nil
}

// DeleteScope deletes a scope. A scope with items is only deleted with Force.
func (e *Engine) DeleteScope(ctx context.Context, req *DeleteScopeRequest) (*DeleteScopeResult, error) {
	if !e.registry.HasScope(req.Name) {
		return nil, fmt.Errorf("%w: scope %q", ErrNotFound, req.Name)
	}

	items := len(e.registry.ListItems(req.Name))
	if items > 0 && !req.Force {
		return nil, fmt.Errorf("%w: scope %q has %d items (use --force to delete it anyway)", ErrValidation, req.Name, items)
	}

	if !e.registry.DeleteScope(req.Name) {
		return nil, fmt.Errorf("%w: scope %q", ErrNotFound, req.Name)
	}

	return &DeleteScopeResult{Name: req.Name, Items: items}, nil
}

// ListScopes returns every scope with its item count, in creation order.
func (e *Engine) ListScopes(ctx context.Context) (*ListScopesResult, error) {
	snapshot := e.registry.Snapshot()

	result := &ListScopesResult{Scopes: make([]ScopeSummary, 0, len(snapshot))}
	for _, s := range snapshot {
		result.Scopes = append(result.Scopes, ScopeSummary{Name: s.Name, Items: len(s.Items)})
	}
	return result, nil
}
