// ABOUTME: Default implementations for library dependencies
// ABOUTME: Factory functions for the cache, HTTP client and logger used when none is supplied

package groundsearch

import (
	"os"
	"time"

	"groundsearch-api/core/interfaces"
	"groundsearch-api/infrastructure/cache/memory"
	"groundsearch-api/infrastructure/cache/sqlite"
	httpInfra "groundsearch-api/infrastructure/http/standard"
	"groundsearch-api/infrastructure/logger/logrusadapter"
)

// DefaultHTTPClient creates an HTTP client with a deadline long enough for proxied page reads
func DefaultHTTPClient() interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(60 * time.Second)
}

// DefaultMemoryCache creates an in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache()
}

// DefaultSQLiteCache opens a SQLite cache at filePath
func DefaultSQLiteCache(filePath string) (*sqlite.Client, error) {
	return sqlite.NewSQLiteCache(filePath)
}

// DefaultLogger writes JSON logs at info level to stderr
func DefaultLogger() interfaces.Logger {
	return logrusadapter.New(logrusadapter.Options{Level: "info", Output: os.Stderr})
}

// QuietLogger discards all output
func QuietLogger() interfaces.Logger {
	return interfaces.NopLogger{}
}
