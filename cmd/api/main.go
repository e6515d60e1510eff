// ABOUTME: Main entry point for the GroundSearch API server
// ABOUTME: Wires configuration, logging, cache, HTTP client, and the search service into the HTTP server

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"groundsearch-api/api"
	"groundsearch-api/api/handlers"
	"groundsearch-api/core/interfaces"
	"groundsearch-api/core/reader"
	"groundsearch-api/core/search"
	"groundsearch-api/core/sources"
	"groundsearch-api/infrastructure/cache"
	stdhttp "groundsearch-api/infrastructure/http/standard"
	"groundsearch-api/infrastructure/logger/logrusadapter"
	"groundsearch-api/pkg/config"
	"groundsearch-api/pkg/featureflags"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logrusadapter.New(logrusadapter.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	defer logger.Close()

	logger.Info("Starting GroundSearch API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"proxy_url":  cfg.Search.ProxyURL,
	})

	flags := featureflags.NewEnvManager("FEATURE_")

	backend, err := cache.New(cfg.Cache, logger)
	if err != nil {
		logger.Error("Failed to create cache", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer backend.Close()

	// Sources have their own deadlines; the client timeout only bounds a stuck connection.
	httpClient := stdhttp.NewStandardHTTPClient(60*time.Second,
		stdhttp.WithTransport(logrusadapter.NewLoggingRoundTripper(nil, logger)),
	)

	deps := interfaces.Dependencies{
		Cache:      cache.NewGated(backend, flags),
		HTTPClient: httpClient,
		Logger:     logger,
		Settings:   config.NewRuntimeSettings(flags),
	}

	searchCfg := search.DefaultConfig()
	searchCfg.ProxyURL = cfg.Search.ProxyURL
	searchCfg.BaseTimeout = cfg.Search.BaseTimeout
	searchCfg.TimeoutStep = cfg.Search.TimeoutStep
	searchCfg.FallbackGenerations = cfg.Search.FallbackGenerations
	searchCfg.FallbackBaseTimeout = cfg.Search.FallbackBaseTimeout
	searchCfg.PageFetchLimit = cfg.Search.PageFetchLimit
	searchCfg.CacheTTL = cfg.Search.CacheTTL
	searchCfg.PageTimeout = cfg.Search.BaseTimeout

	pageReader := reader.NewService(httpClient, deps.Cache, logger, cfg.Search.ProxyURL).WithTimeout(searchCfg.PageTimeout)
	searchService := search.NewSearchService(deps, sources.New(), pageReader, searchCfg)

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:     logger,
		RateLimit:  cfg.Server.RateLimit,
		RateWindow: time.Minute,
		Flags:      flags,
	})
	handlers.NewSearchHandler(searchService).RegisterRoutes(humaAPI)

	// A full search with fallback can take well over a minute.
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{"address": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", map[string]interface{}{"error": err.Error()})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{"error": err.Error()})
	}

	logger.Info("Server stopped", nil)
}
