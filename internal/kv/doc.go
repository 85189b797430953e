// Package kv provides the local key-value storage that pagetrack persists its
// book collection into.
//
// # Overview
//
// The application stores exactly one value: the JSON array of books under the
// key "books". Every mutation rewrites that value in full, so a backend only
// needs whole-value Get, Set, and Delete. Missing keys surface as ErrNotFound
// and callers treat that as an empty collection.
//
// # Backends
//
//   - file: one file per key, replaced atomically via temp file + rename (default)
//   - sqlite: a kv_entries table in pagetrack.db, accessed through gorm
//   - pebble: a Pebble LSM database with synced writes
//   - memory: a process-local map, used by tests and ephemeral runs
//
// Open selects a backend by name:
//
//	store, err := kv.Open(cfg.Storage.Backend, cfg.Storage.Path)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
// # Concurrency
//
// All backends are safe for concurrent use within one process. Across
// processes the last completed write wins; nothing merges concurrent edits.
package kv
