package gitx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// setupRepoDir creates a directory that looks like a git checkout.
func setupRepoDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatalf("failed to create .git: %v", err)
	}
	return dir
}

func TestRealGitRepo_Discover(t *testing.T) {
	repo := NewRealGitRepo()

	t.Run("finds repo from root", func(t *testing.T) {
		dir := setupRepoDir(t)

		root, err := repo.Discover(dir)
		if err != nil {
			t.Fatalf("Discover failed: %v", err)
		}
		if root != dir {
			t.Errorf("Discover returned wrong root: got %s, want %s", root, dir)
		}
	})

	t.Run("finds repo from subdirectory", func(t *testing.T) {
		dir := setupRepoDir(t)
		subDir := filepath.Join(dir, "a", "b", "c")
		if err := os.MkdirAll(subDir, 0755); err != nil {
			t.Fatalf("failed to create subdirectories: %v", err)
		}

		root, err := repo.Discover(subDir)
		if err != nil {
			t.Fatalf("Discover from subdirectory failed: %v", err)
		}
		if root != dir {
			t.Errorf("Discover returned wrong root: got %s, want %s", root, dir)
		}
	})

	t.Run("accepts .git file for worktrees", func(t *testing.T) {
		dir, err := filepath.EvalSymlinks(t.TempDir())
		if err != nil {
			t.Fatalf("failed to resolve temp dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: /elsewhere\n"), 0644); err != nil {
			t.Fatalf("failed to write .git file: %v", err)
		}

		root, err := repo.Discover(dir)
		if err != nil {
			t.Fatalf("Discover failed: %v", err)
		}
		if root != dir {
			t.Errorf("Discover returned wrong root: got %s, want %s", root, dir)
		}
	})

	t.Run("returns ErrNotInRepo outside a repo", func(t *testing.T) {
		dir := t.TempDir()

		root, err := repo.Discover(dir)
		if err == nil {
			t.Skipf("temp dir is inside a repository at %s", root)
		}
		if !errors.Is(err, ErrNotInRepo) {
			t.Errorf("expected ErrNotInRepo, got %v", err)
		}
	})
}

func TestRealGitRepo_Fingerprint(t *testing.T) {
	repo := NewRealGitRepo()
	dirA := setupRepoDir(t)
	dirB := setupRepoDir(t)

	fpA1, err := repo.Fingerprint(dirA)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	fpA2, err := repo.Fingerprint(dirA)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	fpB, err := repo.Fingerprint(dirB)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}

	if fpA1 != fpA2 {
		t.Errorf("fingerprint should be stable: %s != %s", fpA1, fpA2)
	}
	if fpA1 == fpB {
		t.Error("different roots should have different fingerprints")
	}
	if len(fpA1) != 64 {
		t.Errorf("expected a hex sha256 fingerprint, got %q", fpA1)
	}
}

func TestRelPath(t *testing.T) {
	repo := NewFakeGitRepo("/proj", "fp")

	tests := []struct {
		name    string
		root    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "nested file", root: "/proj", path: "/proj/src/main.go", want: filepath.Join("src", "main.go")},
		{name: "root itself", root: "/proj", path: "/proj", want: "."},
		{name: "unclean input", root: "/proj/", path: "/proj/src/../lib", want: "lib"},
		{name: "outside", root: "/proj", path: "/other/file", wantErr: true},
		{name: "sibling with shared prefix", root: "/proj", path: "/project/file", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.RelPath(tt.root, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RelPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("RelPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFakeGitRepo_Error(t *testing.T) {
	repo := NewFakeGitRepo("/proj", "fp")
	boom := errors.New("boom")
	repo.SetError(boom)

	if _, err := repo.Discover("/proj"); !errors.Is(err, boom) {
		t.Errorf("Discover error = %v, want %v", err, boom)
	}
	if _, err := repo.Fingerprint("/proj"); !errors.Is(err, boom) {
		t.Errorf("Fingerprint error = %v, want %v", err, boom)
	}
}
