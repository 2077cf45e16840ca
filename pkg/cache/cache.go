// Package cache stores serialized search results keyed by graph content and
// search options.
//
// Searches are deterministic for a fixed seed, so a stored result is exactly
// what a rerun would produce. The [Cache] interface has three backends:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (service deployments)
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys come from a [Keyer]; [DefaultKeyer] hashes its inputs with SHA-256
// and [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLResult   = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry returns
	// hit == false and a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a [Cache] that never holds an entry.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() *NullCache { return &NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
