// ABOUTME: Cache backend selection and runtime gating
// ABOUTME: Builds the configured backend and lets a feature flag bypass it per call

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"groundsearch-api/core/interfaces"
	"groundsearch-api/infrastructure/cache/memory"
	"groundsearch-api/infrastructure/cache/redis"
	"groundsearch-api/infrastructure/cache/sqlite"
	"groundsearch-api/pkg/config"
	"groundsearch-api/pkg/featureflags"
)

// ErrDisabled is returned by a gated cache while its flag is off.
var ErrDisabled = errors.New("cache disabled")

// Backend is a cache that owns resources.
type Backend interface {
	interfaces.Cache
	Close() error
}

type memoryBackend struct{ *memory.MemoryCache }

func (memoryBackend) Close() error { return nil }

// New builds the backend named by cfg.Type. A redis backend that cannot be
// reached falls back to memory, logged at Error.
func New(cfg config.CacheConfig, logger interfaces.Logger) (Backend, error) {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	mem := func() Backend {
		exp := time.Duration(cfg.Memory.DefaultExpiration) * time.Second
		return memoryBackend{memory.NewMemoryCacheWithExpiration(exp, 10*time.Minute)}
	}

	switch cfg.Type {
	case "", "memory":
		logger.Info("Using memory cache", nil)
		return mem(), nil
	case "redis":
		c, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error":   err.Error(),
				"address": cfg.Redis.Address,
			})
			return mem(), nil
		}
		logger.Info("Using Redis cache", map[string]interface{}{"address": cfg.Redis.Address})
		return c, nil
	case "sqlite":
		c, err := sqlite.NewSQLiteCache(cfg.SQLite.Path, sqlite.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("sqlite cache: %w", err)
		}
		logger.Info("Using SQLite cache", map[string]interface{}{"path": cfg.SQLite.Path})
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}

// Gated consults flag on every call and behaves as an always-missing cache while it is off.
type Gated struct {
	inner interfaces.Cache
	flags featureflags.Manager
	flag  featureflags.FeatureFlag
}

// NewGated wraps inner behind featureflags.CacheEnabled.
func NewGated(inner interfaces.Cache, flags featureflags.Manager) *Gated {
	return &Gated{inner: inner, flags: flags, flag: featureflags.CacheEnabled}
}

func (g *Gated) on(ctx context.Context) bool {
	return g.flags == nil || g.flags.IsEnabled(ctx, g.flag)
}

func (g *Gated) Get(ctx context.Context, key string) ([]byte, error) {
	if !g.on(ctx) {
		return nil, ErrDisabled
	}
	return g.inner.Get(ctx, key)
}

func (g *Gated) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !g.on(ctx) {
		return nil
	}
	return g.inner.Set(ctx, key, value, ttl)
}

func (g *Gated) Delete(ctx context.Context, key string) error {
	return g.inner.Delete(ctx, key)
}
