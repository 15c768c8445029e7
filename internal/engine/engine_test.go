package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/filescope/internal/clock"
	"github.com/danieljhkim/filescope/internal/config"
	"github.com/danieljhkim/filescope/internal/fsops"
	"github.com/danieljhkim/filescope/internal/scope"
	"github.com/danieljhkim/filescope/internal/state"
)

// testWorkspace is a temp directory tree with an engine over it.
type testWorkspace struct {
	root  string
	store *state.MemoryStore
	eng   *Engine
}

func newTestWorkspace(t *testing.T) *testWorkspace {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}

	store := state.NewMemoryStore()
	fs := fsops.NewRealFS()
	reg := scope.Open(store, fs, nil)
	eng := New(reg, fs, &clock.RealClock{}, config.Default(), nil, root)

	return &testWorkspace{root: root, store: store, eng: eng}
}

func (w *testWorkspace) path(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

func (w *testWorkspace) mkdir(t *testing.T, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		if err := os.MkdirAll(w.path(rel), 0755); err != nil {
			t.Fatalf("failed to create dir %s: %v", rel, err)
		}
	}
}

func (w *testWorkspace) write(t *testing.T, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		p := w.path(rel)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("failed to create parent of %s: %v", rel, err)
		}
		if err := os.WriteFile(p, []byte(rel), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}
