// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Holds ranked bundles and page bodies with per-entry TTL and periodic janitor cleanup

package memory

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultExpiration = 1 * time.Hour
	cleanupInterval   = 10 * time.Minute
)

// ErrNotFound is returned for missing or expired keys
var ErrNotFound = errors.New("key not found")

// MemoryCache implements the Cache interface using in-memory storage
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache instance
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithExpiration(defaultExpiration, cleanupInterval)
}

// NewMemoryCacheWithExpiration creates a cache whose janitor runs every cleanup
func NewMemoryCacheWithExpiration(expiration, cleanup time.Duration) *MemoryCache {
	return &MemoryCache{
		store: gocache.New(expiration, cleanup),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, ok := c.store.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	stored, ok := value.([]byte)
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy so callers cannot mutate the cached slice
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a value in the cache with the given TTL; zero means no expiry
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	expiration := ttl
	if ttl == 0 {
		expiration = gocache.NoExpiration
	}
	c.store.Set(key, valueCopy, expiration)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.store.Delete(key)
	return nil
}

// Len returns the number of stored entries, including expired ones not yet swept
func (c *MemoryCache) Len() int {
	return c.store.ItemCount()
}

// Flush removes every entry
func (c *MemoryCache) Flush() {
	c.store.Flush()
}
