package engine

import "github.com/danieljhkim/filescope/internal/scope"

// CreateScopeResult represents the result of creating a scope.
type CreateScopeResult struct {
	Name string `json:"name"`

	// Created is false when the scope already existed
	Created bool `json:"created"`
}

// DeleteScopeResult represents the result of deleting a scope.
type DeleteScopeResult struct {
	Name string `json:"name"`

	// Items is the number of items the scope held
	Items int `json:"items"`
}

// ScopeSummary describes one scope.
type ScopeSummary struct {
	Name  string `json:"name"`
	Items int    `json:"items"`
}

// ListScopesResult lists scopes in creation order.
type ListScopesResult struct {
	Scopes []ScopeSummary `json:"scopes"`
}

// AddPathsResult represents the result of adding paths.
type AddPathsResult struct {
	// Added contains the items that were newly added
	Added []scope.Item `json:"added"`

	// AlreadyPresent contains resolved paths that were already members
	AlreadyPresent []string `json:"already_present,omitempty"`

	// Missing contains resolved paths that do not exist on disk. They are
	// still added, as files.
	Missing []string `json:"missing,omitempty"`
}

// RemovePathsResult represents the result of removing paths.
type RemovePathsResult struct {
	// Removed contains resolved paths that were members and were removed
	Removed []string `json:"removed"`

	// NotFound contains resolved paths that were not members
	NotFound []string `json:"not_found,omitempty"`
}

// ItemInfo describes a scope item for display.
type ItemInfo struct {
	Path    string     `json:"path"`
	RelPath string     `json:"rel_path"`
	Kind    scope.Kind `json:"type"`
	Exists  bool       `json:"exists"`
}

// ListItemsResult lists a scope's items in insertion order.
type ListItemsResult struct {
	Scope string     `json:"scope"`
	Items []ItemInfo `json:"items"`
}

// RelocateResult represents the result of relocating paths.
type RelocateResult struct {
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`

	// Moved is the number of items rewritten across all scopes
	Moved int `json:"moved"`
}

// PrunedItem is an item that was, or in dry-run mode would be, pruned.
type PrunedItem struct {
	Scope string `json:"scope"`
	Path  string `json:"path"`
}

// PruneResult represents the result of pruning.
type PruneResult struct {
	Missing []PrunedItem `json:"missing"`
	DryRun  bool         `json:"dry_run"`
}

// TreeNode is one node of the scope tree. Key is the structured identity of
// the node; children of folders are listed live from disk.
type TreeNode struct {
	Key      scope.Key   `json:"-"`
	Name     string      `json:"name"`
	Path     string      `json:"path,omitempty"`
	Kind     scope.Kind  `json:"type,omitempty"`
	Missing  bool        `json:"missing,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// TreeResult holds one root node per scope.
type TreeResult struct {
	Scopes []*TreeNode `json:"scopes"`
}
