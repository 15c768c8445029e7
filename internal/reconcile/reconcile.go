// Package reconcile keeps scope membership consistent with the filesystem.
//
// A Reconciler turns create, delete and rename notifications into registry
// calls so that a tracked folder adopts new children, deleted paths never
// linger, and moved paths follow their new location.
package reconcile

import (
	"io"
	"log/slog"

	"github.com/danieljhkim/filescope/internal/scope"
)

// Membership is the part of the scope registry the reconciler drives.
type Membership interface {
	ListScopeNames() []string
	ListItems(scopeName string) []scope.Item
	AddItem(scopeName, path string)
	RemoveItem(scopeName, path string)
}

// Op is the kind of filesystem change an Event describes.
type Op int

const (
	// OpCreate reports a new file or directory at Path.
	OpCreate Op = iota + 1

	// OpDelete reports that Path and everything below it is gone.
	OpDelete

	// OpRename reports that OldPath moved to Path.
	OpRename
)

// String returns the lowercase name used in logs.
func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpDelete:
		return "delete"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Event is one filesystem change. OldPath is set only for renames.
type Event struct {
	Op      Op
	Path    string
	OldPath string
}

// Reconciler applies filesystem events to scope membership. Handlers are
// best-effort and never report errors.
type Reconciler struct {
	members Membership
	logger  *slog.Logger
}

// New creates a Reconciler over members.
func New(members Membership, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reconciler{members: members, logger: logger}
}

// Apply dispatches ev to the matching handler.
func (r *Reconciler) Apply(ev Event) {
	switch ev.Op {
	case OpCreate:
		r.OnCreate(ev.Path)
	case OpDelete:
		r.OnDelete(ev.Path)
	case OpRename:
		r.OnRename(ev.OldPath, ev.Path)
	default:
		r.logger.Warn("ignoring unknown event", "op", ev.Op, "path", ev.Path)
	}
}

// OnCreate adopts path into every scope that tracks a folder containing it.
func (r *Reconciler) OnCreate(path string) {
	path = scope.CleanPath(path)
	if path == "" {
		return
	}

	for _, name := range r.members.ListScopeNames() {
		for _, item := range r.members.ListItems(name) {
			if item.Kind == scope.KindFolder && scope.IsUnder(path, item.Path) {
				r.logger.Debug("adopting created path", "scope", name, "path", path, "folder", item.Path)
				r.members.AddItem(name, path)
				break
			}
		}
	}
}

// OnDelete removes path and everything tracked below it from every scope.
func (r *Reconciler) OnDelete(path string) {
	path = scope.CleanPath(path)
	if path == "" {
		return
	}

	for _, name := range r.members.ListScopeNames() {
		for _, item := range r.members.ListItems(name) {
			if scope.IsWithin(item.Path, path) {
				r.logger.Debug("dropping deleted path", "scope", name, "path", item.Path)
				r.members.RemoveItem(name, item.Path)
			}
		}
	}
}

// OnRename moves every item at or below oldPath to the same relative place
// under newPath. Each moved item is removed and re-added so its kind is
// derived again at the new location.
func (r *Reconciler) OnRename(oldPath, newPath string) {
	oldPath, newPath = scope.CleanPath(oldPath), scope.CleanPath(newPath)
	if oldPath == "" || newPath == "" || scope.SamePath(oldPath, newPath) {
		return
	}

	for _, name := range r.members.ListScopeNames() {
		for _, item := range r.members.ListItems(name) {
			moved, ok := scope.Rebase(item.Path, oldPath, newPath)
			if !ok {
				continue
			}
			r.logger.Debug("following renamed path", "scope", name, "from", item.Path, "to", moved)
			r.members.RemoveItem(name, item.Path)
			r.members.AddItem(name, moved)
		}
	}
}
