package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pagetrack/internal/auth"
	"github.com/five82/pagetrack/internal/config"
	"github.com/five82/pagetrack/internal/kv"
	"github.com/five82/pagetrack/internal/prefs"
	"github.com/five82/pagetrack/internal/state"
	"github.com/five82/pagetrack/internal/ui"
)

// Options configure the pagetrack application. Empty fields fall back to the
// config file.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/pagetrack/prefs.toml
	Backend      string
	DataDir      string
	RefreshEvery int // seconds; zero uses config
}

// Env is an opened storage stack shared by the TUI and CLI commands.
type Env struct {
	Config config.Config
	KV     kv.Store
	Store  *state.Store

	logFile io.Closer
}

// Open loads config, applies option overrides, and opens the storage backend.
func Open(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if b := strings.TrimSpace(opts.Backend); b != "" {
		cfg.Backend = strings.ToLower(b)
	}
	if d := strings.TrimSpace(opts.DataDir); d != "" {
		dir, err := config.ExpandPath(d)
		if err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}
		cfg.DataDir = dir
	}
	if opts.RefreshEvery > 0 {
		cfg.RefreshInterval = time.Duration(opts.RefreshEvery) * time.Second
	}

	backend, err := kv.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	return &Env{
		Config: cfg,
		KV:     backend,
		Store:  state.New(backend),
	}, nil
}

// StartLogging sends the standard logger to the configured log file.
func (e *Env) StartLogging() error {
	if err := os.MkdirAll(filepath.Dir(e.Config.LogPath), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(e.Config.LogPath, "pagetrack")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	e.logFile = f
	return nil
}

// Close releases the storage backend and log file.
func (e *Env) Close() error {
	var errs []error
	if e.KV != nil {
		errs = append(errs, e.KV.Close())
	}
	if e.logFile != nil {
		log.SetOutput(io.Discard)
		errs = append(errs, e.logFile.Close())
	}
	return errors.Join(errs...)
}

// Run boots the pagetrack TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.StartLogging(); err != nil {
		return err
	}
	log.Printf("starting: backend=%s data=%s", env.Config.Backend, env.Config.DataDir)

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	// Populate the store before the first frame
	if err := env.Store.Load(ctx); err != nil {
		log.Printf("initial load failed: %v", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	StartReloader(ctx, env.Store, env.Config.RefreshInterval)

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     env.Store,
		Gate:      auth.NoopGate{},
		ZeroPage:  env.Config.ZeroPagePolicy,
		ThemeName: userPrefs.Theme,
		Tab:       userPrefs.Tab,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
