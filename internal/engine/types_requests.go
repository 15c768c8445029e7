package engine

// CreateScopeRequest represents a request to create a scope.
type CreateScopeRequest struct {
	Name string
}

// DeleteScopeRequest represents a request to delete a scope.
type DeleteScopeRequest struct {
	Name string

	// Force allows deleting a scope that still has items
	Force bool
}

// AddPathsRequest represents a request to add paths to a scope.
type AddPathsRequest struct {
	// CWD is the current working directory
	CWD string

	// Scope is the target scope name
	Scope string

	// Paths is the list of paths to add (relative to CWD, absolute, or
	// containing ".."). An empty list adds CWD itself.
	Paths []string
}

// RemovePathsRequest represents a request to remove paths from a scope.
type RemovePathsRequest struct {
	// CWD is the current working directory
	CWD string

	// Scope is the target scope name
	Scope string

	// Paths is the list of paths to remove
	Paths []string
}

// ListItemsRequest represents a request to list a scope's items.
type ListItemsRequest struct {
	Scope string
}

// RelocateRequest represents a request to move tracked paths after the
// files were moved outside of a watched session.
type RelocateRequest struct {
	// CWD is the current working directory
	CWD string

	// OldPath is the previous location
	OldPath string

	// NewPath is the new location
	NewPath string
}

// PruneRequest represents a request to drop items missing on disk.
type PruneRequest struct {
	// DryRun reports what would be removed without changing anything
	DryRun bool
}

// TreeRequest represents a request for the scope tree.
type TreeRequest struct {
	// Scope limits the tree to one scope; empty means all scopes
	Scope string

	// Depth is how many directory levels below folder items are listed.
	// Zero lists only the items themselves.
	Depth int
}
