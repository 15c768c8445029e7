package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/filescope/internal/scope"
)

// Tree builds the tree model for one scope or for all scopes. Folder items
// are expanded from disk up to req.Depth levels; nothing below a folder is
// ever stored as membership.
func (e *Engine) Tree(ctx context.Context, req *TreeRequest) (*TreeResult, error) {
	if req.Depth < 0 {
		return nil, fmt.Errorf("%w: depth must not be negative", ErrValidation)
	}

	names := e.registry.ListScopeNames()
	if req.Scope != "" {
		if !e.registry.HasScope(req.Scope) {
			return nil, fmt.Errorf("%w: scope %q", ErrNotFound, req.Scope)
		}
		names = []string{req.Scope}
	}

	result := &TreeResult{Scopes: make([]*TreeNode, 0, len(names))}
	for _, name := range names {
		root := &TreeNode{Key: scope.Key{Scope: name}, Name: name}
		for _, item := range e.registry.ListItems(name) {
			root.Children = append(root.Children, e.itemNode(ctx, name, item, req.Depth))
		}
		result.Scopes = append(result.Scopes, root)
	}

	return result, nil
}

// Children lists the live directory entries below a folder node. The scope
// node's children are its items.
func (e *Engine) Children(ctx context.Context, key scope.Key) ([]*TreeNode, error) {
	if !e.registry.HasScope(key.Scope) {
		return nil, fmt.Errorf("%w: scope %q", ErrNotFound, key.Scope)
	}

	if key.IsScope() {
		var nodes []*TreeNode
		for _, item := range e.registry.ListItems(key.Scope) {
			nodes = append(nodes, e.itemNode(ctx, key.Scope, item, 0))
		}
		return nodes, nil
	}

	names, err := e.fs.ReadDir(key.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", key.Path, err)
	}

	nodes := make([]*TreeNode, 0, len(names))
	for _, name := range names {
		path := filepath.Join(key.Path, name)
		kind := scope.KindFile
		isDir, err := e.fs.IsDir(path)
		if err != nil {
			e.logger.Debug("failed to stat entry", "path", path, "error", err)
		} else if isDir {
			kind = scope.KindFolder
		}
		nodes = append(nodes, &TreeNode{
			Key:  scope.Key{Scope: key.Scope, Path: path},
			Name: name,
			Path: path,
			Kind: kind,
		})
	}
	return nodes, nil
}

func (e *Engine) itemNode(ctx context.Context, scopeName string, item scope.Item, depth int) *TreeNode {
	node := &TreeNode{
		Key:  scope.Key{Scope: scopeName, Path: item.Path},
		Name: displayPath(item.Path, e.root),
		Path: item.Path,
		Kind: item.Kind,
	}

	exists, err := e.fs.Exists(item.Path)
	if err != nil || !exists {
		node.Missing = true
		return node
	}

	if item.Kind == scope.KindFolder {
		e.expand(ctx, node, depth)
	}
	return node
}

// expand fills in folder children down to depth levels. Listing failures
// leave the node without children.
func (e *Engine) expand(ctx context.Context, node *TreeNode, depth int) {
	if depth <= 0 || node.Kind != scope.KindFolder {
		return
	}

	children, err := e.Children(ctx, node.Key)
	if err != nil {
		e.logger.Warn("failed to list folder", "path", node.Path, "error", err)
		return
	}
	for _, child := range children {
		e.expand(ctx, child, depth-1)
	}
	node.Children = children
}
