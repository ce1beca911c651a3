// Package timeouts provides the deadlines applied at collaborator boundaries:
// document store calls and AI extraction.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks
//   - Short: single-document reads and writes
//   - Medium: list queries
//   - Batch: bulk archive
//   - Extract: page fetch plus model call
//
// Values can be changed at startup with Configure or ConfigureFromEnv.
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing    = 2 * time.Second
	DefaultShort   = 5 * time.Second
	DefaultMedium  = 10 * time.Second
	DefaultBatch   = 60 * time.Second
	DefaultExtract = 45 * time.Second
)

var mu sync.RWMutex

var current = defaults()

func defaults() Config {
	return Config{
		Ping:    DefaultPing,
		Short:   DefaultShort,
		Medium:  DefaultMedium,
		Batch:   DefaultBatch,
		Extract: DefaultExtract,
	}
}

func get(f func(Config) time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return f(current)
}

func Ping() time.Duration    { return get(func(c Config) time.Duration { return c.Ping }) }
func Short() time.Duration   { return get(func(c Config) time.Duration { return c.Short }) }
func Medium() time.Duration  { return get(func(c Config) time.Duration { return c.Medium }) }
func Batch() time.Duration   { return get(func(c Config) time.Duration { return c.Batch }) }
func Extract() time.Duration { return get(func(c Config) time.Duration { return c.Extract }) }

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping    time.Duration
	Short   time.Duration
	Medium  time.Duration
	Batch   time.Duration
	Extract time.Duration
}

// Configure sets custom timeout values. Zero values in the config are
// ignored, keeping the current values. Call it during startup.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	merge(&current.Ping, cfg.Ping)
	merge(&current.Short, cfg.Short)
	merge(&current.Medium, cfg.Medium)
	merge(&current.Batch, cfg.Batch)
	merge(&current.Extract, cfg.Extract)
}

func merge(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}

// Reset restores all timeouts to their default values.
// Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = defaults()
}

// ConfigureFromEnv reads CAMPANION_TIMEOUT_{PING,SHORT,MEDIUM,BATCH,EXTRACT}
// as Go durations ("2s", "500ms"). Invalid or non-positive values are
// skipped. Returns the number of timeouts set.
func ConfigureFromEnv() int {
	var cfg Config
	n := 0
	for name, dst := range map[string]*time.Duration{
		"CAMPANION_TIMEOUT_PING":    &cfg.Ping,
		"CAMPANION_TIMEOUT_SHORT":   &cfg.Short,
		"CAMPANION_TIMEOUT_MEDIUM":  &cfg.Medium,
		"CAMPANION_TIMEOUT_BATCH":   &cfg.Batch,
		"CAMPANION_TIMEOUT_EXTRACT": &cfg.Extract,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
			n++
		}
	}
	Configure(cfg)
	return n
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// WithTimeout creates a context with timeout and returns a cancel function
// that logs a warning if the deadline was hit.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "bulk archive")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
