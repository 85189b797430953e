package app

import (
	"context"
	"log"
	"time"

	"github.com/five82/pagetrack/internal/state"
)

const (
	defaultReloadInterval = 2 * time.Second
	maxBackoff            = 30 * time.Second
)

// StartReloader launches a background goroutine that re-reads storage so
// writes from other pagetrack processes show up in the store. It returns
// immediately and stops when ctx is cancelled.
func StartReloader(ctx context.Context, store *state.Store, interval time.Duration) {
	if interval <= 0 {
		interval = defaultReloadInterval
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			failures = reload(ctx, store, failures)
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// reload loads the store once and returns the updated failure count.
func reload(ctx context.Context, store *state.Store, failures int) int {
	if err := store.Load(ctx); err != nil {
		if ctx.Err() != nil {
			return failures
		}
		failures++
		log.Printf("reload failed (%d in a row): %v", failures, err)
		return failures
	}
	if failures > 0 {
		log.Printf("reload recovered after %d failures", failures)
	}
	return 0
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
