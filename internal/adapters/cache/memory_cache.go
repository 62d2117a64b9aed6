package cache

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/joojungwoo/yakson/internal/core"
	"github.com/joojungwoo/yakson/internal/ttlcache"
)

// ErrNotFound is returned when a cache entry is not found or expired.
var ErrNotFound = errors.New("cache entry not found")

// MemoryCache is an in-memory implementation of the EvidenceCache interface,
// backed by a capacity-bounded TTL map.
type MemoryCache struct {
	entries     *ttlcache.Map[string, *core.EvidenceBundle]
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMemoryCache creates a new in-memory evidence cache.
func NewMemoryCache(logger *zap.Logger, cleanupFreq time.Duration, capacity int) *MemoryCache {
	c := &MemoryCache{
		entries:     ttlcache.New[string, *core.EvidenceBundle](capacity),
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go c.startCleanupTask()

	return c
}

// Get retrieves a cached bundle. Expired entries are reclaimed on access and
// reported as ErrNotFound.
func (c *MemoryCache) Get(_ context.Context, key string) (*core.EvidenceBundle, error) {
	bundle, ok := c.entries.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return bundle, nil
}

// Set stores a bundle with the given TTL, evicting the oldest-inserted
// entry when the map exceeds its capacity.
func (c *MemoryCache) Set(_ context.Context, key string, bundle *core.EvidenceBundle, ttl time.Duration) error {
	c.entries.Set(key, bundle, ttl)
	return nil
}

// Delete removes a cache entry.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.entries.Delete(key)
	return nil
}

// Cleanup removes expired entries.
func (c *MemoryCache) Cleanup(_ context.Context) error {
	expired := c.entries.Cleanup()
	c.logger.Debug("Cleaned up expired cache entries", zap.Int("expired_count", expired))
	return nil
}

// startCleanupTask starts a background task to clean up expired entries.
func (c *MemoryCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Cleanup(context.Background()); err != nil {
				c.logger.Error("Failed to clean up cache", zap.Error(err))
			}
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task.
func (c *MemoryCache) Stop() {
	close(c.stopCh)
}
