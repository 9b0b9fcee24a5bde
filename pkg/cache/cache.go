// Package cache stores computed layouts and converted graphs so repeated CLI
// runs over an unchanged file skip the work.
//
// Two backends implement [Cache]: [FileCache] for a single machine and
// [RedisCache] for a cache shared between machines (CI runners, a team's
// editors). [NullCache] disables caching. Keys come from a [Keyer], which
// hashes every input that can change the output.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value stored under key. A missing or expired entry is
	// a miss (ok == false), not an error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
