// Package cache provides byte-oriented caching for pipeline stages.
//
// Rendered artifacts are keyed by the content hash of the graph they were
// derived from plus the options that shaped them, so a graph change or an
// option change always misses. Imported graphs are keyed by the content
// hash of their source manifest. Backends:
//   - [FileCache]: on-disk cache for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disabled caching
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact: the graph's
// content hash plus the output format and the render options that affect
// the bytes.
func ArtifactKey(graphHash, format string, opts any) string {
	return hashKey("artifact", graphHash, format, opts)
}

// GraphKey builds the cache key for an imported graph derived from a
// hypergraph manifest hash.
func GraphKey(manifestHash string) string {
	return hashKey("graph", manifestHash)
}
