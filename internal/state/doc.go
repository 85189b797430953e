// Package state owns the book collection for the pagetrack application.
//
// # Overview
//
// Store is the single source of truth for the collection inside a process.
// The TUI, the CLI commands, and the background reloader all go through it.
// It persists into a kv.Store under the fixed key "books" and publishes a
// fresh Snapshot to subscribers after every load or mutation.
//
// # Architecture
//
//	Writers (UI keys, CLI):          Readers (UI):
//	┌────────────────────┐          ┌────────────────────┐
//	│ Create / Update    │          │                    │
//	│ Delete / Inc / Dec │          │                    │
//	│ SaveAll / Load     │          │                    │
//	│        ↓           │          │                    │
//	│ read blob (kv)     │          │                    │
//	│ modify copy        │          │                    │
//	│ write blob (kv)    │─────────→│ <-Subscribe()      │
//	│        ↓           │ (mutex)  │ store.Snapshot()   │
//	│ publish snapshot   │          │ render             │
//	└────────────────────┘          └────────────────────┘
//
// # Update Semantics
//
// Every mutation is a full read-modify-write of the stored blob, done while
// holding the write lock:
//
//	store.IncrementPages(ctx, id)
//	→ read "books" from storage (picks up writes from other processes)
//	→ pagesRead = min(pagesRead+1, totalPages)
//	→ write the whole array back
//	→ snapshot.Books = new array, LastError = nil
//
// Mutations that match no id do not write. Create and Update validate their
// form Fields first and return books.ErrMissingFields without touching
// storage.
//
// # Error Handling
//
// Failures never discard data that was already loaded:
//
//	// Load fails (unreadable or undecodable blob)
//	→ snapshot.Books = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// A failed write leaves both the stored blob and the in-memory collection as
// they were. IsDegraded reports two or more consecutive failures so the UI
// can flag storage trouble.
//
// # Subscriptions
//
// Subscribe hands out a one-slot channel per subscriber. Publishing replaces
// any snapshot still waiting in the slot, so a slow reader sees the newest
// state and writers never block. Snapshots are published while the write
// lock is held, so they arrive in mutation order.
//
// # Concurrency Model
//
//   - Mutations and Load: exclusive lock, including storage I/O
//   - Snapshot / Find: shared lock, copy only
//
// Across processes the last completed write wins.
package state
