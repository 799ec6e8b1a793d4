// Package timeouts provides centralized timeout values for handler and
// worker operations.
//
// These values are used with context.WithTimeout around database and blob
// store I/O. Centralizing them keeps handlers consistent and makes tuning a
// one-line change.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads or lookups
//   - Medium: list queries, moderate writes, multi-step reads
//   - Long: writes touching multiple collections or the blob store
//   - Sweep: a full maintenance run over every user and task
package timeouts

import (
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
	DefaultSweep  = 10 * time.Minute
)

var (
	mu sync.RWMutex

	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
	sweep  = DefaultSweep
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document operations.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and simple writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for multi-collection writes and uploads.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// Sweep returns the timeout for one full maintenance run.
func Sweep() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return sweep
}

// Config holds timeout overrides. Zero values are ignored.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
	Sweep  time.Duration
}

// Configure applies overrides. Call during startup before handlers are
// registered.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Long > 0 {
		long = cfg.Long
	}
	if cfg.Sweep > 0 {
		sweep = cfg.Sweep
	}
}

// Reset restores defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	medium = DefaultMedium
	long = DefaultLong
	sweep = DefaultSweep
}
