package cache

import (
	"context"
	"time"

	"github.com/joojungwoo/yakson/internal/core"
)

// NopCache is an EvidenceCache that stores nothing. Used when caching is
// disabled so the extractors need no branching.
type NopCache struct{}

// NewNopCache creates a cache that never stores anything.
func NewNopCache() *NopCache {
	return &NopCache{}
}

// Get always misses.
func (c *NopCache) Get(ctx context.Context, key string) (*core.EvidenceBundle, error) {
	return nil, ErrNotFound
}

// Set discards the bundle.
func (c *NopCache) Set(ctx context.Context, key string, bundle *core.EvidenceBundle, ttl time.Duration) error {
	return nil
}

// Delete is a no-op.
func (c *NopCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Cleanup is a no-op.
func (c *NopCache) Cleanup(ctx context.Context) error {
	return nil
}
