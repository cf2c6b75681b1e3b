// Package cache provides pluggable storage for registry responses.
//
// Caching is disabled unless the user asks for it: the default [Cache] is
// [NullCache]. [FileCache] stores entries under the user cache directory and
// [RedisCache] shares entries between machines through a Redis server.
//
// Keys are produced by a [Keyer] so that responses from different registries
// never collide.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
//
// Get reports a miss with (nil, false, nil). A ttl of 0 passed to Set means
// the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
