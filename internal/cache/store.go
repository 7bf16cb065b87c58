// Package cache provides the shared key-value store backing the dataset
// snapshot and the memoized chart figures.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss reports that a key is absent or its entry has expired. Callers
// treat a miss as a signal to recompute, never as a failure.
var ErrMiss = errors.New("cache: key not found")

// Store is a byte-oriented cache with per-entry TTLs. Entries are immutable
// once written; concurrent writers of the same key produce value-equal
// payloads, so last write wins is safe.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}
