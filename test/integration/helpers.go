package integration

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/filescope/internal/clock"
	"github.com/danieljhkim/filescope/internal/config"
	"github.com/danieljhkim/filescope/internal/engine"
	"github.com/danieljhkim/filescope/internal/fsops"
	"github.com/danieljhkim/filescope/internal/gitx"
)

const repoRoot = "/repo"

// testFS is a filesystem implementation that tracks files in memory for testing
type testFS struct {
	files map[string][]byte
	dirs  map[string]bool
}

var _ fsops.FS = (*testFS)(nil)

func newTestFS() *testFS {
	return &testFS{
		files: make(map[string][]byte),
		dirs:  map[string]bool{"/": true},
	}
}

// addFile creates a file and its parent directories.
func (fs *testFS) addFile(path string) {
	fs.mkdirAll(filepath.Dir(path))
	fs.files[path] = []byte("x")
}

// move renames a file or directory tree, the way os.Rename would.
func (fs *testFS) move(oldPath, newPath string) {
	prefix := oldPath + string(filepath.Separator)
	for p, data := range fs.files {
		if p == oldPath || strings.HasPrefix(p, prefix) {
			delete(fs.files, p)
			fs.files[newPath+strings.TrimPrefix(p, oldPath)] = data
		}
	}
	for p := range fs.dirs {
		if p == oldPath || strings.HasPrefix(p, prefix) {
			delete(fs.dirs, p)
			fs.dirs[newPath+strings.TrimPrefix(p, oldPath)] = true
		}
	}
}

func (fs *testFS) Exists(path string) (bool, error) {
	_, hasFile := fs.files[path]
	return hasFile || fs.dirs[path], nil
}

func (fs *testFS) IsDir(path string) (bool, error) {
	return fs.dirs[path], nil
}

func (fs *testFS) ReadDir(path string) ([]string, error) {
	if !fs.dirs[path] {
		return nil, os.ErrNotExist
	}

	seen := make(map[string]bool)
	collect := func(p string) {
		if p != path && filepath.Dir(p) == path {
			seen[filepath.Base(p)] = true
		}
	}
	for p := range fs.files {
		collect(p)
	}
	for p := range fs.dirs {
		collect(p)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// mkdirAll records path and every parent as a directory.
func (fs *testFS) mkdirAll(path string) {
	for p := path; ; p = filepath.Dir(p) {
		fs.dirs[p] = true
		if filepath.Dir(p) == p {
			return
		}
	}
}

// removeAll deletes path and everything below it.
func (fs *testFS) removeAll(path string) {
	prefix := path + string(filepath.Separator)
	for p := range fs.files {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(fs.files, p)
		}
	}
	for p := range fs.dirs {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(fs.dirs, p)
		}
	}
}

func (fs *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	fs.mkdirAll(filepath.Dir(path))
	fs.files[path] = append([]byte(nil), data...)
	return nil
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	if content, ok := fs.files[path]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, os.ErrNotExist
}

func (fs *testFS) ValidateIdentifier(id string) error {
	return (&fsops.RealFS{}).ValidateIdentifier(id)
}

// testEnv opens engines over one in-memory filesystem so state written by
// one session is seen by the next.
type testEnv struct {
	t     *testing.T
	fs    *testFS
	git   *gitx.FakeGitRepo
	paths *config.Paths
	cfg   *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	fs := newTestFS()
	fs.mkdirAll(repoRoot)

	return &testEnv{
		t:     t,
		fs:    fs,
		git:   gitx.NewFakeGitRepo(repoRoot, "repo-fingerprint-123"),
		paths: config.PathsAt(t.TempDir()),
		cfg:   config.Default(),
	}
}

// open starts a new session in cwd. The engine is closed with the test.
func (env *testEnv) open(cwd string) *engine.Engine {
	env.t.Helper()

	eng, err := engine.Open(context.Background(), &engine.OpenRequest{
		CWD:     cwd,
		Paths:   env.paths,
		Config:  env.cfg,
		GitRepo: env.git,
		FS:      env.fs,
		Clock:   clock.NewFakeClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		env.t.Fatalf("Open() error = %v", err)
	}
	env.t.Cleanup(func() { _ = eng.Close() })
	return eng
}

func repoPath(parts ...string) string {
	return filepath.Join(append([]string{repoRoot}, parts...)...)
}
