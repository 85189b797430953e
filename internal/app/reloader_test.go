package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/pagetrack/internal/books"
	"github.com/five82/pagetrack/internal/kv"
	"github.com/five82/pagetrack/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 200; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestReload_CountsAndResetsFailures(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	store := state.New(mem)

	if err := mem.Set(ctx, books.StorageKey, []byte("garbage")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := reload(ctx, store, 0); got != 1 {
		t.Fatalf("reload failures = %d, want 1", got)
	}
	if got := reload(ctx, store, 1); got != 2 {
		t.Fatalf("reload failures = %d, want 2", got)
	}

	if err := mem.Set(ctx, books.StorageKey, []byte("[]")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := reload(ctx, store, 2); got != 0 {
		t.Fatalf("reload failures = %d, want 0", got)
	}
}

func TestStartReloader_PicksUpExternalWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mem := kv.NewMemory()
	store := state.New(mem)
	updates, unsubscribe := store.Subscribe()
	defer unsubscribe()

	// another process writes behind the store's back
	other := state.New(mem)
	if _, err := other.Create(ctx, books.Fields{Title: "Dune", Author: "Herbert", PagesRead: "1", TotalPages: "2"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	StartReloader(ctx, store, 10*time.Millisecond)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-updates:
			if len(snap.Books) == 1 {
				return
			}
		case <-deadline:
			t.Fatalf("reloader never published the external write")
		}
	}
}

func TestOpen_AppliesOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfgPath := filepath.Join(home, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[storage]\nbackend = \"sqlite\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	dataDir := filepath.Join(home, "data")
	env, err := Open(Options{ConfigPath: cfgPath, Backend: "File", DataDir: dataDir, RefreshEvery: 7})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer env.Close()

	if env.Config.Backend != kv.BackendFile {
		t.Fatalf("Backend = %q, want %q", env.Config.Backend, kv.BackendFile)
	}
	if env.Config.DataDir != dataDir {
		t.Fatalf("DataDir = %q, want %q", env.Config.DataDir, dataDir)
	}
	if env.Config.RefreshInterval != 7*time.Second {
		t.Fatalf("RefreshInterval = %v, want 7s", env.Config.RefreshInterval)
	}
	if _, ok := env.KV.(*kv.File); !ok {
		t.Fatalf("KV = %T, want *kv.File", env.KV)
	}
}

func TestOpen_UnknownBackendFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := Open(Options{Backend: "etcd"}); err == nil {
		t.Fatalf("Open returned nil error, want unknown backend error")
	}
}

func TestEnv_StartLoggingCreatesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	env, err := Open(Options{Backend: kv.BackendMemory})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	env.Config.LogPath = filepath.Join(home, "state", "pagetrack.log")
	if err := env.StartLogging(); err != nil {
		t.Fatalf("StartLogging returned error: %v", err)
	}
	if err := env.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if _, err := os.Stat(env.Config.LogPath); err != nil {
		t.Fatalf("log file missing: %v", err)
	}
}
