// Package engine provides the operations behind the filescope CLI.
//
// The engine package is the orchestration layer between CLI commands and
// the scope core. It discovers the workspace, opens the configured store,
// builds the scope registry and reconciler once, and exposes request/result
// operations over them.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Scopes: create, delete and list scopes
//   - Membership: add, remove and list scope items
//   - Maintenance: relocate moved paths and prune missing ones
//   - Tree: lazy tree model for rendering scopes
//   - Watch: keeps membership in sync with filesystem changes
package engine

import (
	"io"
	"log/slog"

	"github.com/danieljhkim/filescope/internal/clock"
	"github.com/danieljhkim/filescope/internal/config"
	"github.com/danieljhkim/filescope/internal/fsops"
	"github.com/danieljhkim/filescope/internal/reconcile"
	"github.com/danieljhkim/filescope/internal/scope"
	"github.com/danieljhkim/filescope/internal/state"
)

// Engine orchestrates all filescope operations.
// It is the main API surface called by the CLI.
type Engine struct {
	registry   *scope.Registry
	reconciler *reconcile.Reconciler
	fs         fsops.FS
	clock      clock.Clock
	cfg        *config.Config
	logger     *slog.Logger
	root       string

	store       state.Store
	workspaceID string
}

// New creates a new Engine over an already opened registry. root is the
// workspace directory watched by Watch.
func New(
	registry *scope.Registry,
	fs fsops.FS,
	clk clock.Clock,
	cfg *config.Config,
	logger *slog.Logger,
	root string,
) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if clk == nil {
		clk = &clock.RealClock{}
	}

	return &Engine{
		registry:   registry,
		reconciler: reconcile.New(registry, logger),
		fs:         fs,
		clock:      clk,
		cfg:        cfg,
		logger:     logger,
		root:       root,
	}
}

// Registry returns the scope registry the engine operates on.
func (e *Engine) Registry() *scope.Registry {
	return e.registry
}

// Root returns the workspace root directory.
func (e *Engine) Root() string {
	return e.root
}

// WorkspaceID returns the ID the store is namespaced by. It is empty for
// engines built with New.
func (e *Engine) WorkspaceID() string {
	return e.workspaceID
}

// Close releases the store opened by Open.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}
