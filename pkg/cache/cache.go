// Package cache provides caching for computed layouts and rendered
// artifacts.
//
// Three backends implement the [Cache] interface:
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: Redis-backed, for multi-instance server deployments
//   - NullCache: no-op, for tests or disabled caching
//
// Cache keys are derived through a [Keyer] so that every consumer (CLI,
// server, pipeline) produces identical keys for identical work. Keys hash
// the structure string together with the options that affect the cached
// stage, so any change in input or configuration misses cleanly.
package cache

import (
	"context"
	"time"
)

// TTLs per cached stage. Layouts are pure functions of their inputs and
// could live forever; bounded TTLs keep backends from growing without a
// sweeper.
const (
	// TTLLayout is the lifetime of cached layout geometry.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of zero means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
