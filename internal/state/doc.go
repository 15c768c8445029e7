// Package state provides the durable key-value store that scope membership
// is persisted to.
//
// A Store is bound to one workspace: keys written through it never collide
// with keys written for another workspace. The scope registry is the only
// caller and stores its whole state as one JSON value under one key.
//
// Backends:
//   - FileStore: one JSON document per workspace under ~/.filescope/workspaces
//   - BoltStore: one bbolt bucket per workspace in ~/.filescope/filescope.db
//   - MemoryStore: in-process map with failure injection, for tests
package state
