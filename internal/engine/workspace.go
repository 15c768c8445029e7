package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/danieljhkim/filescope/internal/clock"
	"github.com/danieljhkim/filescope/internal/config"
	"github.com/danieljhkim/filescope/internal/fsops"
	"github.com/danieljhkim/filescope/internal/gitx"
	"github.com/danieljhkim/filescope/internal/scope"
	"github.com/danieljhkim/filescope/internal/state"
)

// OpenRequest describes how to locate the workspace and its store.
type OpenRequest struct {
	// CWD is the current working directory
	CWD string

	// Workspace optionally pins the workspace directory instead of
	// discovering it from CWD
	Workspace string

	// Paths is the filescope data layout
	Paths *config.Paths

	// Config is the loaded configuration (defaults when nil)
	Config *config.Config

	// Logger receives diagnostics (discarded when nil)
	Logger *slog.Logger

	// GitRepo, FS and Clock override the real implementations, for tests
	GitRepo gitx.GitRepo
	FS      fsops.FS
	Clock   clock.Clock
}

// WorkspaceInfo describes a discovered workspace.
type WorkspaceInfo struct {
	// Root is the absolute workspace directory
	Root string

	// RepoRoot is the enclosing repository root (equal to Root outside a repo)
	RepoRoot string

	// Fingerprint identifies the repository
	Fingerprint string

	// WorkspacePath is Root relative to RepoRoot
	WorkspacePath string

	// WorkspaceID namespaces the persisted scopes
	WorkspaceID string
}

// Open discovers the workspace, opens its store and builds an Engine.
// The caller must Close the returned Engine.
func Open(ctx context.Context, req *OpenRequest) (*Engine, error) {
	if req.Paths == nil {
		return nil, fmt.Errorf("%w: paths are required", ErrValidation)
	}
	cfg := req.Config
	if cfg == nil {
		cfg = config.Default()
	}
	fs := req.FS
	if fs == nil {
		fs = fsops.NewRealFS()
	}
	gitRepo := req.GitRepo
	if gitRepo == nil {
		gitRepo = gitx.NewRealGitRepo()
	}

	info, err := DiscoverWorkspace(gitRepo, req.CWD, req.Workspace, req.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to discover workspace: %w", err)
	}

	if err := req.Paths.EnsureDirectories(); err != nil {
		return nil, err
	}

	store, err := openStore(fs, req.Paths, cfg.Store.Backend, info.WorkspaceID)
	if err != nil {
		return nil, err
	}

	e := New(scope.Open(store, fs, req.Logger), fs, req.Clock, cfg, req.Logger, info.Root)
	e.store = store
	e.workspaceID = info.WorkspaceID
	e.logger.Debug("workspace opened",
		"root", info.Root,
		"workspace_id", info.WorkspaceID,
		"backend", cfg.Store.Backend,
	)

	return e, nil
}

// DiscoverWorkspace resolves the workspace for cwd. When workspace is set it
// is used as the workspace directory; otherwise the enclosing repository
// root is used, falling back to cwd outside a repository.
func DiscoverWorkspace(gitRepo gitx.GitRepo, cwd, workspace string, logger *slog.Logger) (*WorkspaceInfo, error) {
	start := cwd
	if workspace != "" {
		start = resolvePath(workspace, cwd)
	}
	start, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace directory: %w", err)
	}

	repoRoot, err := gitRepo.Discover(start)
	if err != nil {
		if !errors.Is(err, gitx.ErrNotInRepo) {
			return nil, err
		}
		if logger != nil {
			logger.Debug("not in a git repository, using directory as workspace", "dir", start)
		}
		repoRoot = start
	}

	root := repoRoot
	if workspace != "" {
		root = start
	}

	fingerprint, err := gitRepo.Fingerprint(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace fingerprint: %w", err)
	}

	workspacePath, err := gitRepo.RelPath(repoRoot, root)
	if err != nil {
		return nil, fmt.Errorf("failed to compute workspace path: %w", err)
	}

	return &WorkspaceInfo{
		Root:          root,
		RepoRoot:      repoRoot,
		Fingerprint:   fingerprint,
		WorkspacePath: workspacePath,
		WorkspaceID:   state.ComputeWorkspaceID(fingerprint, workspacePath),
	}, nil
}

func openStore(fs fsops.FS, paths *config.Paths, backend config.StoreBackend, workspaceID string) (state.Store, error) {
	switch backend {
	case config.BackendBbolt:
		store, err := state.OpenBoltStore(paths.Database, workspaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to open bbolt store: %w", err)
		}
		return store, nil
	case config.BackendJSON, "":
		store, err := state.NewFileStore(fs, paths.Workspaces, workspaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to open file store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", ErrValidation, backend)
	}
}
