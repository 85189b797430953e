// Package app provides the orchestration layer for pagetrack.
//
// # Overview
//
// This package wires together configuration, storage, state management, and
// the UI. It is the composition root for both the TUI and the CLI commands:
// each opens an Env, which holds the loaded config, the chosen kv backend, and
// the state.Store on top of it.
//
// # Components
//
//   - app.go: Options, Env (Open, StartLogging, Close), and Run for the TUI
//   - reloader.go: background loop that re-reads storage with backoff
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read pagetrack config
//	       ├─────> kv.Open()            file, sqlite, pebble, or memory
//	       ├─────> state.New()          Collection over the kv store
//	       ├─────> env.StartLogging()   log -> file via tea.LogToFile
//	       ├─────> store.Load()         First read before the first frame
//	       ├─────> StartReloader()      Pick up writes from other processes
//	       └─────> ui.Run()             Start TUI (blocks)
//
// # Reload Behavior
//
// The reloader calls store.Load at the configured interval (default 2
// seconds). Consecutive failures double the wait up to 30 seconds; the first
// success resets it. Failures are logged and recorded on the snapshot, and
// the data already in memory is kept.
//
// # Error Handling
//
// Fatal errors (returned from Open or Run):
//   - Invalid config file or unknown backend
//   - Storage that cannot be opened
//   - Log file that cannot be created
//
// Recoverable errors (logged, shown in the header):
//   - Initial or periodic load failures
//   - Failed writes from the UI
package app
