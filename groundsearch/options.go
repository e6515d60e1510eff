// ABOUTME: Configuration options for the groundsearch library client
// ABOUTME: Functional options over the cache, HTTP client, logger, proxy credential and timeouts

package groundsearch

import (
	"context"
	"time"

	"groundsearch-api/core/interfaces"
	"groundsearch-api/core/search"
	"groundsearch-api/infrastructure/logger/logrusadapter"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// Config holds the configuration for the client
type Config struct {
	Cache      interfaces.Cache
	HTTPClient interfaces.HTTPClient
	Logger     interfaces.Logger

	// Settings, when set, overrides ProxyAPIKey and the Disable switches
	Settings interfaces.SettingsProvider

	// ProxyAPIKey enables the proxied sources and page bodies
	ProxyAPIKey string

	DisableProxiedSources bool
	DisablePageBodies     bool

	// Search holds timeouts, limits and the proxy URL
	Search search.Config

	noCache bool
	closers []func() error
}

func defaultConfig() Config {
	return Config{Search: search.DefaultConfig()}
}

// WithCache sets a custom cache implementation
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithSQLiteCache persists bundles and pages in the SQLite file at path
func WithSQLiteCache(path string) Option {
	return func(c *Config) error {
		cache, err := DefaultSQLiteCache(path)
		if err != nil {
			return NewError(ErrorTypeConfiguration, "cannot open sqlite cache").
				WithCause(err).WithContext("path", path)
		}
		c.Cache = cache
		c.closers = append(c.closers, cache.Close)
		return nil
	}
}

// WithoutCache disables caching
func WithoutCache() Option {
	return func(c *Config) error {
		c.Cache = nil
		c.noCache = true
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithLogLevel logs JSON to stdout at the given logrus level
func WithLogLevel(level string) Option {
	return func(c *Config) error {
		c.Logger = logrusadapter.New(logrusadapter.Options{Level: level})
		return nil
	}
}

// WithQuietMode discards all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = interfaces.NopLogger{}
		return nil
	}
}

// WithProxyAPIKey enables proxied sources with the given bearer credential
func WithProxyAPIKey(key string) Option {
	return func(c *Config) error {
		c.ProxyAPIKey = key
		return nil
	}
}

// WithProxyURL points proxied sources and page fetches at another reading proxy
func WithProxyURL(url string) Option {
	return func(c *Config) error {
		if url == "" {
			return NewError(ErrorTypeConfiguration, "proxy URL cannot be empty")
		}
		c.Search.ProxyURL = url
		return nil
	}
}

// WithSettingsProvider reads settings from p on every call
func WithSettingsProvider(p interfaces.SettingsProvider) Option {
	return func(c *Config) error {
		c.Settings = p
		return nil
	}
}

// WithTimeouts sets the per-source deadline and its per-generation step
func WithTimeouts(base, step time.Duration) Option {
	return func(c *Config) error {
		if base <= 0 || step < 0 {
			return NewError(ErrorTypeConfiguration, "timeouts must be positive").
				WithContext("base", base.String()).WithContext("step", step.String())
		}
		c.Search.BaseTimeout = base
		c.Search.TimeoutStep = step
		return nil
	}
}

// WithFallback sets the fallback step deadline and the number of retry generations
func WithFallback(base time.Duration, generations int) Option {
	return func(c *Config) error {
		if base <= 0 || generations < 0 {
			return NewError(ErrorTypeConfiguration, "invalid fallback schedule")
		}
		c.Search.FallbackBaseTimeout = base
		c.Search.FallbackGenerations = generations
		return nil
	}
}

// WithPageFetchLimit sets how many top results get their bodies fetched
func WithPageFetchLimit(n int) Option {
	return func(c *Config) error {
		if n < 1 || n > 10 {
			return NewError(ErrorTypeConfiguration, "page fetch limit must be between 1 and 10").
				WithContext("limit", n)
		}
		c.Search.PageFetchLimit = n
		return nil
	}
}

// WithoutPageBodies skips the page body fetch step
func WithoutPageBodies() Option {
	return func(c *Config) error {
		c.DisablePageBodies = true
		return nil
	}
}

// WithoutProxiedSources restricts searches to the always-on sources
func WithoutProxiedSources() Option {
	return func(c *Config) error {
		c.DisableProxiedSources = true
		return nil
	}
}

// withDefaults fills any dependency the caller did not provide
func (c *Config) withDefaults() {
	if c.Cache == nil && !c.noCache {
		c.Cache = DefaultMemoryCache()
	}
	if c.HTTPClient == nil {
		c.HTTPClient = DefaultHTTPClient()
	}
	if c.Logger == nil {
		c.Logger = QuietLogger()
	}
	if c.Settings == nil {
		static := Settings{
			Enabled:               true,
			ProxyAPIKey:           c.ProxyAPIKey,
			ProxiedSourcesEnabled: !c.DisableProxiedSources,
			PageBodiesEnabled:     !c.DisablePageBodies,
		}
		c.Settings = interfaces.SettingsFunc(func(context.Context) Settings { return static })
	}
}
