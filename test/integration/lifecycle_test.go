package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danieljhkim/filescope/internal/engine"
	"github.com/danieljhkim/filescope/internal/scope"
)

func itemPaths(t *testing.T, eng *engine.Engine, name string) []string {
	t.Helper()
	result, err := eng.ListItems(context.Background(), &engine.ListItemsRequest{Scope: name})
	if err != nil {
		t.Fatalf("ListItems(%q) error = %v", name, err)
	}
	paths := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		paths = append(paths, item.RelPath)
	}
	return paths
}

func TestLifecycle_PersistsAcrossSessions(t *testing.T) {
	env := newTestEnv(t)
	env.fs.addFile(repoPath("src", "main.go"))
	env.fs.addFile(repoPath("README.md"))
	ctx := context.Background()

	first := env.open(repoPath("src"))
	if _, err := first.CreateScope(ctx, &engine.CreateScopeRequest{Name: "feature"}); err != nil {
		t.Fatalf("CreateScope() error = %v", err)
	}
	if _, err := first.AddPaths(ctx, &engine.AddPathsRequest{
		CWD:   repoPath("src"),
		Scope: "feature",
		Paths: []string{".", "../README.md"},
	}); err != nil {
		t.Fatalf("AddPaths() error = %v", err)
	}
	_ = first.Close()

	second := env.open(repoRoot)
	if second.WorkspaceID() != first.WorkspaceID() {
		t.Errorf("workspace ID changed between sessions: %s != %s", first.WorkspaceID(), second.WorkspaceID())
	}

	want := []scope.Item{
		{Path: repoPath("src"), Kind: scope.KindFolder},
		{Path: repoPath("README.md"), Kind: scope.KindFile},
	}
	if diff := cmp.Diff(want, second.Registry().ListItems("feature")); diff != "" {
		t.Errorf("items after reopen mismatch (-want +got):\n%s", diff)
	}
}

func TestLifecycle_MissingItemsDroppedOnReopen(t *testing.T) {
	env := newTestEnv(t)
	env.fs.addFile(repoPath("a.txt"))
	env.fs.addFile(repoPath("b.txt"))
	ctx := context.Background()

	first := env.open(repoRoot)
	_, _ = first.CreateScope(ctx, &engine.CreateScopeRequest{Name: "feature"})
	_, _ = first.AddPaths(ctx, &engine.AddPathsRequest{CWD: repoRoot, Scope: "feature", Paths: []string{"a.txt", "b.txt"}})
	_ = first.Close()

	env.fs.removeAll(repoPath("a.txt"))

	second := env.open(repoRoot)
	if diff := cmp.Diff([]string{"b.txt"}, itemPaths(t, second, "feature")); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	pruned, err := second.Prune(ctx, &engine.PruneRequest{})
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if len(pruned.Missing) != 0 {
		t.Errorf("Prune() found %v, want nothing after load sanitization", pruned.Missing)
	}
}

func TestLifecycle_PruneWithinSession(t *testing.T) {
	env := newTestEnv(t)
	env.fs.addFile(repoPath("docs", "guide.md"))
	env.fs.addFile(repoPath("notes.txt"))
	ctx := context.Background()

	eng := env.open(repoRoot)
	_, _ = eng.CreateScope(ctx, &engine.CreateScopeRequest{Name: "one"})
	_, _ = eng.CreateScope(ctx, &engine.CreateScopeRequest{Name: "two"})
	_, _ = eng.AddPaths(ctx, &engine.AddPathsRequest{CWD: repoRoot, Scope: "one", Paths: []string{"docs", "notes.txt"}})
	_, _ = eng.AddPaths(ctx, &engine.AddPathsRequest{CWD: repoRoot, Scope: "two", Paths: []string{"docs"}})

	env.fs.removeAll(repoPath("docs"))

	preview, err := eng.Prune(ctx, &engine.PruneRequest{DryRun: true})
	if err != nil {
		t.Fatalf("Prune(dry run) error = %v", err)
	}
	if len(preview.Missing) != 2 {
		t.Fatalf("dry run found %d missing items, want 2", len(preview.Missing))
	}
	if got := itemPaths(t, eng, "two"); len(got) != 1 {
		t.Errorf("dry run must not modify scopes, scope two = %v", got)
	}

	if _, err := eng.Prune(ctx, &engine.PruneRequest{}); err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if diff := cmp.Diff([]string{"notes.txt"}, itemPaths(t, eng, "one")); diff != "" {
		t.Errorf("scope one mismatch (-want +got):\n%s", diff)
	}
	if got := itemPaths(t, eng, "two"); len(got) != 0 {
		t.Errorf("scope two = %v, want empty", got)
	}
}

func TestLifecycle_DeleteScopeKeepsOthers(t *testing.T) {
	env := newTestEnv(t)
	env.fs.addFile(repoPath("a.txt"))
	ctx := context.Background()

	eng := env.open(repoRoot)
	_, _ = eng.CreateScope(ctx, &engine.CreateScopeRequest{Name: "keep"})
	_, _ = eng.CreateScope(ctx, &engine.CreateScopeRequest{Name: "drop"})
	_, _ = eng.AddPaths(ctx, &engine.AddPathsRequest{CWD: repoRoot, Scope: "drop", Paths: []string{"a.txt"}})

	if _, err := eng.DeleteScope(ctx, &engine.DeleteScopeRequest{Name: "drop"}); !errors.Is(err, engine.ErrValidation) {
		t.Fatalf("DeleteScope without force error = %v, want ErrValidation", err)
	}
	if _, err := eng.DeleteScope(ctx, &engine.DeleteScopeRequest{Name: "drop", Force: true}); err != nil {
		t.Fatalf("DeleteScope() error = %v", err)
	}
	_ = eng.Close()

	reopened := env.open(repoRoot)
	if diff := cmp.Diff([]string{"keep"}, reopened.Registry().ListScopeNames()); diff != "" {
		t.Errorf("scopes mismatch (-want +got):\n%s", diff)
	}
	if ok, _ := env.fs.Exists(repoPath("a.txt")); !ok {
		t.Error("deleting a scope must not delete files")
	}
}

func TestLifecycle_WorkspacesAreIsolated(t *testing.T) {
	env := newTestEnv(t)
	env.fs.mkdirAll(repoPath("services", "api"))
	ctx := context.Background()

	rootEng := env.open(repoRoot)
	_, _ = rootEng.CreateScope(ctx, &engine.CreateScopeRequest{Name: "root-only"})

	nested, err := engine.Open(ctx, &engine.OpenRequest{
		CWD:       repoRoot,
		Workspace: "services/api",
		Paths:     env.paths,
		Config:    env.cfg,
		GitRepo:   env.git,
		FS:        env.fs,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer nested.Close()

	if nested.WorkspaceID() == rootEng.WorkspaceID() {
		t.Fatal("nested workspace should have its own ID")
	}
	if nested.Root() != repoPath("services", "api") {
		t.Errorf("Root() = %s, want %s", nested.Root(), repoPath("services", "api"))
	}
	if names := nested.Registry().ListScopeNames(); len(names) != 0 {
		t.Errorf("nested workspace sees scopes %v, want none", names)
	}
}
