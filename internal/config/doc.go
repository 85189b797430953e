// Package config handles loading and parsing the pagetrack configuration file.
//
// # Overview
//
// The config file picks the storage backend and data directory, the per-book
// percentage policy for books with zero pages, the UI reload cadence, and the
// log file location. Every field is optional.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pagetrack/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/pagetrack/config.toml
//   - Storage backend: file
//   - Data directory: ~/.local/share/pagetrack
//   - Zero-page books: guard (0%)
//   - Reload interval: 2 seconds
//   - Log file: ~/.local/state/pagetrack/pagetrack.log
//
// # TOML Format
//
//	[storage]
//	backend = "file"          # file | sqlite | pebble | memory
//	path = "~/.local/share/pagetrack"
//
//	[statistics]
//	zero_page_items = "guard" # guard | nan
//
//	[ui]
//	refresh_seconds = 2
//
//	[log]
//	path = "~/.local/state/pagetrack/pagetrack.log"
//
// Tilde expansion is performed on every path.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Unknown backend or zero-page policy names
//
// Missing config files are NOT an error.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return fmt.Errorf("load config: %w", err)
//	}
//	store, err := kv.Open(cfg.Backend, cfg.DataDir)
package config
