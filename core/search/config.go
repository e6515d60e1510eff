package search

import "time"

// Config holds the tunables of the search pipeline
type Config struct {
	// ProxyURL is the page-reading proxy base used for proxied sources
	ProxyURL string

	// BaseTimeout is the per-source deadline of the parallel pass
	BaseTimeout time.Duration

	// TimeoutStep is added to every deadline per retry generation
	TimeoutStep time.Duration

	// FallbackGenerations is how many times the sequential fallback is retried after the first pass
	FallbackGenerations int

	// FallbackBaseTimeout is the per-step deadline of the first fallback pass
	FallbackBaseTimeout time.Duration

	// PageFetchLimit is how many top results get their bodies fetched
	PageFetchLimit int

	// PageTimeout bounds each page body fetch
	PageTimeout time.Duration

	// CacheTTL is how long ranked bundles stay cached; zero disables bundle caching
	CacheTTL time.Duration

	// MaxConcurrentProxied caps simultaneous requests through the proxy
	MaxConcurrentProxied int64
}

// DefaultConfig returns the documented defaults
func DefaultConfig() Config {
	return Config{
		ProxyURL:             "https://r.jina.ai",
		BaseTimeout:          20 * time.Second,
		TimeoutStep:          5 * time.Second,
		FallbackGenerations:  2,
		FallbackBaseTimeout:  10 * time.Second,
		PageFetchLimit:       5,
		PageTimeout:          20 * time.Second,
		CacheTTL:             10 * time.Minute,
		MaxConcurrentProxied: 4,
	}
}

// SourceTimeout returns the parallel-pass deadline for a retry generation
func (c Config) SourceTimeout(generation int) time.Duration {
	return c.BaseTimeout + time.Duration(generation)*c.TimeoutStep
}

// FallbackSchedule returns one per-step deadline per fallback generation.
// Its length bounds the fallback loop.
func (c Config) FallbackSchedule() []time.Duration {
	generations := c.FallbackGenerations
	if generations < 0 {
		generations = 0
	}
	schedule := make([]time.Duration, generations+1)
	for i := range schedule {
		schedule[i] = c.FallbackBaseTimeout + time.Duration(i)*c.TimeoutStep
	}
	return schedule
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ProxyURL == "" {
		c.ProxyURL = d.ProxyURL
	}
	if c.BaseTimeout <= 0 {
		c.BaseTimeout = d.BaseTimeout
	}
	if c.TimeoutStep < 0 {
		c.TimeoutStep = 0
	}
	if c.FallbackBaseTimeout <= 0 {
		c.FallbackBaseTimeout = d.FallbackBaseTimeout
	}
	if c.PageTimeout <= 0 {
		c.PageTimeout = c.BaseTimeout
	}
	if c.PageFetchLimit < 0 {
		c.PageFetchLimit = 0
	}
	if c.MaxConcurrentProxied <= 0 {
		c.MaxConcurrentProxied = d.MaxConcurrentProxied
	}
	return c
}
