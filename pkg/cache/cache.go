// Package cache stores computed layouts and rendered artifacts.
//
// All backends implement [Cache], a byte-oriented key/value store with
// per-entry TTLs:
//
//   - [FileCache]: sharded JSON files under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the HTTP service
//   - [NullCache]: stores nothing, for tests and --no-cache
//
// Keys come from a [Keyer] so every caller derives the same key for the same
// document and options. [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Default TTLs per entry type.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value store for layout results and artifacts.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored bytes and true, or false on a miss. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

var (
	_ Clearer = (*FileCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)

// GetJSON decodes the entry under key into v. It returns [ErrCacheMiss] when
// the key is absent.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(data, v)
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}

// NullCache stores nothing; every Get is a miss.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache returns a cache for --no-cache runs and tests.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }
