package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/pagetrack/internal/kv"
	"github.com/five82/pagetrack/internal/stats"
)

// Config captures pagetrack's runtime settings.
type Config struct {
	Backend         string
	DataDir         string
	ZeroPagePolicy  stats.ZeroPagePolicy
	RefreshInterval time.Duration
	LogPath         string
}

const (
	defaultConfigPath = "~/.config/pagetrack/config.toml"
	defaultDataDir    = "~/.local/share/pagetrack"
	defaultLogPath    = "~/.local/state/pagetrack/pagetrack.log"
	defaultBackend    = kv.BackendFile
	defaultRefresh    = 2 * time.Second
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Backend:         defaultBackend,
		DataDir:         mustExpand(defaultDataDir),
		ZeroPagePolicy:  stats.ZeroPageGuard,
		RefreshInterval: defaultRefresh,
		LogPath:         mustExpand(defaultLogPath),
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Storage struct {
			Backend string `toml:"backend"`
			Path    string `toml:"path"`
		} `toml:"storage"`
		Statistics struct {
			ZeroPageItems string `toml:"zero_page_items"`
		} `toml:"statistics"`
		UI struct {
			RefreshSeconds int `toml:"refresh_seconds"`
		} `toml:"ui"`
		Log struct {
			Path string `toml:"path"`
		} `toml:"log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if backend := strings.ToLower(strings.TrimSpace(raw.Storage.Backend)); backend != "" {
		if !slices.Contains(kv.Backends(), backend) {
			return Config{}, fmt.Errorf("parse config: storage.backend %q is not one of %s",
				raw.Storage.Backend, strings.Join(kv.Backends(), ", "))
		}
		cfg.Backend = backend
	}

	if dir := strings.TrimSpace(raw.Storage.Path); dir != "" {
		cfg.DataDir = mustExpand(dir)
	}

	policy, err := stats.ParseZeroPagePolicy(raw.Statistics.ZeroPageItems)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: statistics.zero_page_items: %w", err)
	}
	cfg.ZeroPagePolicy = policy

	if raw.UI.RefreshSeconds > 0 {
		cfg.RefreshInterval = time.Duration(raw.UI.RefreshSeconds) * time.Second
	}

	if logPath := strings.TrimSpace(raw.Log.Path); logPath != "" {
		cfg.LogPath = mustExpand(logPath)
	}

	return cfg, nil
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
