// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package: caching, outbound HTTP and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: in-process cache on patrickmn/go-cache
// - cache/redis: Redis-backed cache shared between instances
// - cache/sqlite: file-backed cache that survives restarts
// - cache: backend factory and the feature-flag gate
// - http/standard: net/http client with retries and exponential backoff
// - logger/logrusadapter: logrus JSON logger with optional lumberjack rotation
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "page:https://go.dev/", body, time.Hour)
//	value, err := cache.Get(ctx, "page:https://go.dev/")
//
// Backends are normally built from configuration:
//
//	backend, err := cache.New(cfg.Cache, logger)
//	defer backend.Close()
//
// # HTTP Client
//
// Transient failures are retried; the request context bounds every attempt:
//
//	client := standard.NewStandardHTTPClient(30*time.Second, standard.WithMaxRetries(2))
//	resp, err := client.Get(ctx, "https://api.duckduckgo.com/?q=go&format=json", nil)
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := logrusadapter.New(logrusadapter.Options{Level: "debug"})
//	logger.Info("Source settled", map[string]interface{}{
//	    "source":  "bing",
//	    "results": 7,
//	})
package infrastructure
