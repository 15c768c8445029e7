package scope

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// fakeFS is an in-memory fsops.FS holding a set of paths and whether each is
// a directory.
type fakeFS struct {
	mu      sync.Mutex
	entries map[string]bool
	statErr error
}

func newFakeFS() *fakeFS {
	return &fakeFS{entries: make(map[string]bool)}
}

func (f *fakeFS) addDir(paths ...string) *fakeFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range paths {
		f.entries[filepath.Clean(p)] = true
	}
	return f
}

func (f *fakeFS) addFile(paths ...string) *fakeFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range paths {
		f.entries[filepath.Clean(p)] = false
	}
	return f
}

func (f *fakeFS) Exists(path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statErr != nil {
		return false, f.statErr
	}
	_, ok := f.entries[filepath.Clean(path)]
	return ok, nil
}

func (f *fakeFS) IsDir(path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statErr != nil {
		return false, f.statErr
	}
	return f.entries[filepath.Clean(path)], nil
}

func (f *fakeFS) ReadDir(path string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for p := range f.entries {
		if filepath.Dir(p) == filepath.Clean(path) {
			names = append(names, filepath.Base(p))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	return errors.New("not implemented")
}
func (f *fakeFS) ReadFile(path string) ([]byte, error) { return nil, os.ErrNotExist }
func (f *fakeFS) ValidateIdentifier(id string) error { return nil }
