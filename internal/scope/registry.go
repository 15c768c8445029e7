package scope

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/danieljhkim/filescope/internal/fsops"
	"github.com/danieljhkim/filescope/internal/state"
)

// StorageKey is the store key the whole registry state is persisted under.
const StorageKey = "filescope.scopes"

// Registry owns the ordered list of scopes and their items.
//
// All methods are safe for concurrent use. Mutations are applied one at a
// time, written through to the store while the lock is held, and announced
// to subscribers after the lock is released.
type Registry struct {
	mu     sync.Mutex
	scopes []Scope

	listeners  map[int]func()
	nextListen int

	store  state.Store
	fs     fsops.FS
	logger *slog.Logger
}

// Open builds a Registry and loads its state from store. It never fails:
// an unreadable or malformed stored value yields an empty registry.
func Open(store state.Store, fs fsops.FS, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := &Registry{
		listeners: make(map[int]func()),
		store:     store,
		fs:        fs,
		logger:    logger,
	}

	r.mu.Lock()
	r.load()
	r.mu.Unlock()

	return r
}

// load reads and sanitizes the stored state. Caller holds r.mu.
func (r *Registry) load() {
	raw, found, err := r.store.Get(StorageKey)
	if err != nil {
		r.logger.Error("failed to read scopes, starting empty", "error", err)
		return
	}
	if !found {
		return
	}

	var stored []Scope
	if err := json.Unmarshal(raw, &stored); err != nil {
		r.logger.Warn("discarding malformed scope state", "error", err)
		r.persist()
		return
	}

	scopes, dirty := r.sanitize(stored)
	r.scopes = scopes
	if dirty {
		r.persist()
	}
}

// sanitize drops unnamed or duplicate scopes, empty or duplicate paths and
// items missing on disk, and re-derives item kinds. dirty reports whether
// anything differs from the input.
func (r *Registry) sanitize(stored []Scope) ([]Scope, bool) {
	dirty := false
	scopes := make([]Scope, 0, len(stored))
	names := make(map[string]bool, len(stored))

	for _, s := range stored {
		if strings.TrimSpace(s.Name) == "" || names[s.Name] {
			dirty = true
			continue
		}
		names[s.Name] = true

		clean := Scope{Name: s.Name, Items: make([]Item, 0, len(s.Items))}
		for _, item := range s.Items {
			path := CleanPath(item.Path)
			if path == "" || indexOfItem(clean.Items, path) >= 0 {
				dirty = true
				continue
			}

			exists, err := r.fs.Exists(path)
			if err != nil {
				r.logger.Warn("failed to check item, keeping it", "scope", s.Name, "path", path, "error", err)
				exists = true
			}
			if !exists {
				r.logger.Debug("dropping missing item", "scope", s.Name, "path", path)
				dirty = true
				continue
			}

			kind := r.kindOf(path)
			if path != item.Path || kind != item.Kind {
				dirty = true
			}
			clean.Items = append(clean.Items, Item{Path: path, Kind: kind})
		}
		scopes = append(scopes, clean)
	}

	return scopes, dirty
}

// persist writes the full state to the store. Caller holds r.mu.
func (r *Registry) persist() {
	out := make([]Scope, len(r.scopes))
	for i, s := range r.scopes {
		out[i] = s.clone()
	}

	data, err := json.Marshal(out)
	if err != nil {
		r.logger.Error("failed to marshal scopes", "error", err)
		return
	}
	if err := r.store.Set(StorageKey, data); err != nil {
		r.logger.Error("failed to save scopes", "error", err)
	}
}

// kindOf reports Folder when a directory exists at path and File otherwise,
// including when nothing exists there.
func (r *Registry) kindOf(path string) Kind {
	isDir, err := r.fs.IsDir(path)
	if err != nil {
		r.logger.Warn("failed to stat path", "path", path, "error", err)
		return KindFile
	}
	if isDir {
		return KindFolder
	}
	return KindFile
}

func (r *Registry) find(name string) int {
	for i := range r.scopes {
		if r.scopes[i].Name == name {
			return i
		}
	}
	return -1
}

func indexOfItem(items []Item, path string) int {
	for i := range items {
		if SamePath(items[i].Path, path) {
			return i
		}
	}
	return -1
}

// commit persists, releases the lock and notifies subscribers.
func (r *Registry) commit() {
	r.persist()

	fns := make([]func(), 0, len(r.listeners))
	for id := 0; id < r.nextListen; id++ {
		if fn, ok := r.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Subscribe registers fn to be called after every mutation. The returned
// function removes the subscription.
func (r *Registry) Subscribe(fn func()) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextListen
	r.nextListen++
	r.listeners[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.listeners, id)
			r.mu.Unlock()
		})
	}
}

// CreateScope appends an empty scope. Duplicate or blank names are ignored.
func (r *Registry) CreateScope(name string) {
	r.mu.Lock()
	if strings.TrimSpace(name) == "" || r.find(name) >= 0 {
		r.mu.Unlock()
		return
	}

	r.scopes = append(r.scopes, Scope{Name: name, Items: []Item{}})
	r.commit()
}

// HasScope reports whether a scope named name exists.
func (r *Registry) HasScope(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(name) >= 0
}

// ListScopeNames returns scope names in creation order.
func (r *Registry) ListScopeNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, len(r.scopes))
	for i, s := range r.scopes {
		names[i] = s.Name
	}
	return names
}

// ListItems returns a copy of the scope's items, or an empty slice if the
// scope does not exist.
func (r *Registry) ListItems(scopeName string) []Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.find(scopeName)
	if i < 0 {
		return []Item{}
	}
	return r.scopes[i].clone().Items
}

// Snapshot returns a deep copy of every scope.
func (r *Registry) Snapshot() []Scope {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Scope, len(r.scopes))
	for i, s := range r.scopes {
		out[i] = s.clone()
	}
	return out
}

// AddItem adds path to the scope. It is a no-op when the scope does not
// exist or already contains path.
func (r *Registry) AddItem(scopeName, path string) {
	path = CleanPath(path)

	r.mu.Lock()
	i := r.find(scopeName)
	if path == "" || i < 0 || indexOfItem(r.scopes[i].Items, path) >= 0 {
		r.mu.Unlock()
		return
	}

	item := Item{Path: path, Kind: r.kindOf(path)}
	r.scopes[i].Items = append(r.scopes[i].Items, item)
	r.logger.Debug("added item", "scope", scopeName, "path", path, "kind", item.Kind)
	r.commit()
}

// RemoveItem removes path from the scope. The state is persisted whenever
// the scope exists, even if path was not a member.
func (r *Registry) RemoveItem(scopeName, path string) {
	path = CleanPath(path)

	r.mu.Lock()
	i := r.find(scopeName)
	if i < 0 {
		r.mu.Unlock()
		return
	}

	if j := indexOfItem(r.scopes[i].Items, path); j >= 0 {
		items := r.scopes[i].Items
		r.scopes[i].Items = append(items[:j:j], items[j+1:]...)
		r.logger.Debug("removed item", "scope", scopeName, "path", path)
	}
	r.commit()
}

// DeleteScope removes the named scope and reports whether it existed.
func (r *Registry) DeleteScope(name string) bool {
	r.mu.Lock()
	i := r.find(name)
	if i < 0 {
		r.mu.Unlock()
		return false
	}

	r.scopes = append(r.scopes[:i:i], r.scopes[i+1:]...)
	r.commit()
	return true
}

// RelocateItem rewrites every item equal to or nested under oldPath so that
// it sits at the same relative position under newPath. Kinds are kept. An
// item whose rewritten path is already in the scope is dropped.
func (r *Registry) RelocateItem(oldPath, newPath string) {
	oldPath, newPath = CleanPath(oldPath), CleanPath(newPath)
	if oldPath == "" || newPath == "" {
		return
	}

	r.mu.Lock()
	for i := range r.scopes {
		items := make([]Item, 0, len(r.scopes[i].Items))
		for _, item := range r.scopes[i].Items {
			if moved, ok := Rebase(item.Path, oldPath, newPath); ok {
				item.Path = moved
			}
			if indexOfItem(items, item.Path) >= 0 {
				continue
			}
			items = append(items, item)
		}
		r.scopes[i].Items = items
	}
	r.commit()
}

// PruneMissing removes every item whose path is exactly one of paths, from
// every scope.
func (r *Registry) PruneMissing(paths []string) {
	drop := make(map[string]bool, len(paths))
	for _, p := range paths {
		drop[normalizeForCompare(CleanPath(p))] = true
	}

	r.mu.Lock()
	for i := range r.scopes {
		items := make([]Item, 0, len(r.scopes[i].Items))
		for _, item := range r.scopes[i].Items {
			if drop[normalizeForCompare(item.Path)] {
				continue
			}
			items = append(items, item)
		}
		r.scopes[i].Items = items
	}
	r.commit()
}
