package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/danieljhkim/filescope/internal/fsops"
)

// Store is a durable key-value store bound to a single workspace.
type Store interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(key string) (value []byte, found bool, err error)

	// Set durably stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Close releases resources held by the store.
	Close() error
}

// FileStore implements Store using one JSON document per workspace. The
// document is an object mapping keys to raw JSON values.
type FileStore struct {
	fs   fsops.FS
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore for workspaceID under dir.
func NewFileStore(fs fsops.FS, dir, workspaceID string) (*FileStore, error) {
	if err := fs.ValidateIdentifier(workspaceID); err != nil {
		return nil, fmt.Errorf("invalid workspace ID: %w", err)
	}

	return &FileStore{
		fs:   fs,
		path: filepath.Join(dir, workspaceID+".json"),
	}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, false, err
	}

	raw, ok := doc[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(raw), true, nil
}

// Set stores value under key. value must be valid JSON.
func (s *FileStore) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for key %q is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workspace state: %w", err)
	}

	if err := s.fs.AtomicWrite(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write workspace state: %w", err)
	}

	return nil
}

// Close is a no-op for FileStore.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) load() (map[string]json.RawMessage, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]json.RawMessage), nil
		}
		return nil, fmt.Errorf("failed to read workspace state: %w", err)
	}

	doc := make(map[string]json.RawMessage)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workspace state: %w", err)
	}
	return doc, nil
}

// MemoryStore implements Store in memory. GetErr and SetErr, when set, are
// returned by every subsequent call so tests can exercise failure handling.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
	writes int

	GetErr error
	SetErr error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.GetErr != nil {
		return nil, false, s.GetErr
	}
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SetErr != nil {
		return s.SetErr
	}
	s.values[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

// Put seeds a value without counting it as a write.
func (s *MemoryStore) Put(key string, value []byte) {
	s.mu.Lock()
	s.values[key] = append([]byte(nil), value...)
	s.mu.Unlock()
}

// Writes returns the number of successful Set calls.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Close is a no-op for MemoryStore.
func (s *MemoryStore) Close() error {
	return nil
}
