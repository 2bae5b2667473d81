// Package cache provides byte-level caching for rendered graph artifacts.
//
// Rasterizing a day graph through Graphviz is the most expensive operation in
// the CLI, so rendered SVG/PNG bytes are cached keyed by a hash of the DOT
// source plus the output format. Identical graphs rerender for free.
package cache

import (
	"context"
	"time"
)

// Cache stores and retrieves byte values with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// RenderKey builds the cache key for a rendered artifact: a hash of the DOT
// source scoped by output format, so the same graph rendered as SVG and PNG
// occupies two entries.
func RenderKey(dot string, format string) string {
	return "render:" + format + ":" + Hash([]byte(dot))
}
