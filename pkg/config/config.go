// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, logging, cache, and search tuning

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"groundsearch-api/pkg/utils/duration"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Log contains logging configuration
	Log LogConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Search contains engine tuning
	Search SearchConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests per minute allowed per client
	RateLimit int
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is a logrus level name
	Level string

	// File, when set, receives a rotated copy of the log
	File string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int

	// KeyPrefix namespaces every key; empty uses the backend default
	KeyPrefix string
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// SearchConfig holds the engine's timeouts and limits
type SearchConfig struct {
	// ProxyURL is the page-reading proxy base URL
	ProxyURL string

	// BaseTimeout bounds each source in the parallel pass; TimeoutStep is added per generation
	BaseTimeout time.Duration
	TimeoutStep time.Duration

	// FallbackGenerations is the highest fallback retry generation
	FallbackGenerations int

	// FallbackBaseTimeout bounds each fallback step in generation 0
	FallbackBaseTimeout time.Duration

	// PageFetchLimit caps how many page bodies are fetched per search
	PageFetchLimit int

	// CacheTTL is how long a ranked bundle is reused
	CacheTTL time.Duration
}

// Environment variable names read at call time by RuntimeSettings.
const (
	EnvProxyAPIKey = "READER_PROXY_API_KEY"
)

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8000"),
			RateLimit: getEnvAsIntOrDefault("RATE_LIMIT", 100),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:   getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:  getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:        getEnvAsIntOrDefault("REDIS_DB", 0),
				KeyPrefix: os.Getenv("REDIS_KEY_PREFIX"),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_PATH", "cache.db"),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
		},
		Search: SearchConfig{
			ProxyURL:            getEnvOrDefault("READER_PROXY_URL", "https://r.jina.ai"),
			BaseTimeout:         getEnvAsDurationOrDefault("SEARCH_BASE_TIMEOUT", 20*time.Second),
			TimeoutStep:         getEnvAsDurationOrDefault("SEARCH_TIMEOUT_STEP", 5*time.Second),
			FallbackGenerations: getEnvAsIntOrDefault("FALLBACK_RETRY_GENERATIONS", 2),
			FallbackBaseTimeout: getEnvAsDurationOrDefault("FALLBACK_BASE_TIMEOUT", 10*time.Second),
			PageFetchLimit:      getEnvAsIntOrDefault("PAGE_FETCH_LIMIT", 5),
			CacheTTL:            getEnvAsDurationOrDefault("SEARCH_CACHE_TTL", 10*time.Minute),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault reads seconds (or a Go duration string)
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	return duration.OrDefault(os.Getenv(key), defaultValue)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 1 {
		return errors.New("rate limit must be at least 1 request per minute")
	}

	switch c.Cache.Type {
	case "memory", "sqlite":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	default:
		return fmt.Errorf("cache type must be 'memory', 'redis' or 'sqlite', got %q", c.Cache.Type)
	}

	s := c.Search
	if s.ProxyURL == "" {
		return errors.New("reader proxy URL cannot be empty")
	}
	if s.BaseTimeout <= 0 || s.FallbackBaseTimeout <= 0 {
		return errors.New("search timeouts must be positive")
	}
	if s.TimeoutStep < 0 {
		return errors.New("search timeout step cannot be negative")
	}
	if s.FallbackGenerations < 0 {
		return errors.New("fallback retry generations cannot be negative")
	}
	if s.PageFetchLimit < 1 || s.PageFetchLimit > 10 {
		return fmt.Errorf("page fetch limit must be between 1 and 10, got %d", s.PageFetchLimit)
	}
	if s.CacheTTL < 0 {
		return errors.New("search cache TTL cannot be negative")
	}

	return nil
}
