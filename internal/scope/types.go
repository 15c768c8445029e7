// Package scope holds the scope membership model: named, ordered groups of
// files and folders that persist across sessions.
//
// The Registry is the single source of truth for membership while the
// process runs. It loads once from a state.Store, writes the full state back
// after every mutation, and never returns errors to its callers: store
// faults are logged and the in-memory state stays authoritative.
package scope

import (
	"encoding/json"
	"fmt"
)

// Kind is the filesystem type recorded for an item.
type Kind string

const (
	// KindFile marks an item that was not a directory when added.
	KindFile Kind = "file"

	// KindFolder marks an item that was a directory when added. A folder item
	// stands for its whole subtree.
	KindFolder Kind = "folder"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindFile || k == KindFolder
}

// UnmarshalJSON rejects unknown kinds so a malformed stored value is treated
// as corruption rather than silently accepted.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !Kind(s).Valid() {
		return fmt.Errorf("unknown item type %q", s)
	}
	*k = Kind(s)
	return nil
}

// Item is one tracked path inside a scope. Identity is the path.
type Item struct {
	Path string `json:"path"`
	Kind Kind   `json:"type"`
}

// Scope is a named, ordered collection of items.
type Scope struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Key identifies a node handed to the presentation layer: a scope, or a
// path shown under a scope. Path is empty for the scope node itself.
type Key struct {
	Scope string
	Path  string
}

// IsScope reports whether the key names a scope node.
func (k Key) IsScope() bool {
	return k.Path == ""
}

func (s Scope) clone() Scope {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	return Scope{Name: s.Name, Items: items}
}
