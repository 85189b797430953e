package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal string-keyed blob store. Implementations must be safe for
// use from multiple goroutines.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendPebble = "pebble"
	BackendMemory = "memory"
)

// Backends lists the accepted backend names in display order.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendPebble, BackendMemory}
}

// Open returns the store for backend rooted at dir. The memory backend ignores dir.
func Open(backend, dir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return OpenFile(dir)
	case BackendSQLite:
		return OpenSQLite(dir)
	case BackendPebble:
		return OpenPebble(dir)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("kv: key is empty")
	}
	return nil
}
