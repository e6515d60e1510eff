// ABOUTME: Runtime feature flags for the search engine
// ABOUTME: Read from the environment on every check so operators can flip them without a restart

package featureflags

import (
	"context"
	"os"
	"strings"
	"sync"
)

// FeatureFlag represents a single feature flag
type FeatureFlag string

// Defined feature flags
const (
	// WebSearchEnabled turns the whole search pipeline on or off
	WebSearchEnabled FeatureFlag = "web_search_enabled"

	// ProxiedSources allows the proxy-fetched engines when a credential is configured
	ProxiedSources FeatureFlag = "proxied_sources"

	// PageBodies allows the page body fetch step after ranking
	PageBodies FeatureFlag = "page_bodies"

	// CacheEnabled enables bundle and page caching
	CacheEnabled FeatureFlag = "cache_enabled"

	// RateLimitEnabled enables per-client rate limiting on the HTTP API
	RateLimitEnabled FeatureFlag = "rate_limit_enabled"
)

// Defaults is the state of every flag when nothing overrides it.
var Defaults = map[FeatureFlag]bool{
	WebSearchEnabled: true,
	ProxiedSources:   true,
	PageBodies:       true,
	CacheEnabled:     true,
	RateLimitEnabled: true,
}

// Manager defines the interface for feature flag management
type Manager interface {
	// IsEnabled checks if a feature flag is enabled
	IsEnabled(ctx context.Context, flag FeatureFlag) bool

	// SetEnabled pins a flag's state, overriding the environment
	SetEnabled(flag FeatureFlag, enabled bool)

	// GetAllFlags returns the state of all flags
	GetAllFlags() map[FeatureFlag]bool
}

// EnvManager implements Manager using environment variables
type EnvManager struct {
	mu        sync.RWMutex
	overrides map[FeatureFlag]bool
	prefix    string
}

// NewEnvManager creates a new environment-based feature flag manager
func NewEnvManager(prefix string) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	return &EnvManager{
		overrides: make(map[FeatureFlag]bool),
		prefix:    prefix,
	}
}

// IsEnabled checks overrides, then the environment, then Defaults.
func (m *EnvManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	if enabled, ok := m.overrides[flag]; ok {
		m.mu.RUnlock()
		return enabled
	}
	m.mu.RUnlock()

	value, ok := os.LookupEnv(m.prefix + strings.ToUpper(string(flag)))
	if !ok || value == "" {
		return Defaults[flag]
	}

	switch strings.ToLower(value) {
	case "true", "1", "enabled", "on":
		return true
	default:
		return false
	}
}

// SetEnabled sets a feature flag's state
func (m *EnvManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[flag] = enabled
}

// GetAllFlags returns the state of all defined flags
func (m *EnvManager) GetAllFlags() map[FeatureFlag]bool {
	ctx := context.Background()
	flags := make(map[FeatureFlag]bool, len(Defaults))
	for flag := range Defaults {
		flags[flag] = m.IsEnabled(ctx, flag)
	}
	return flags
}

// StaticManager implements Manager with static configuration.
// Flags it was not given fall back to Defaults.
type StaticManager struct {
	flags map[FeatureFlag]bool
	mu    sync.RWMutex
}

// NewStaticManager creates a manager with predefined flag states
func NewStaticManager(flags map[FeatureFlag]bool) *StaticManager {
	copied := make(map[FeatureFlag]bool, len(flags))
	for k, v := range flags {
		copied[k] = v
	}
	return &StaticManager{flags: copied}
}

// IsEnabled checks if a feature flag is enabled
func (m *StaticManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if enabled, ok := m.flags[flag]; ok {
		return enabled
	}
	return Defaults[flag]
}

// SetEnabled sets a feature flag's state
func (m *StaticManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[flag] = enabled
}

// GetAllFlags returns all flag states
func (m *StaticManager) GetAllFlags() map[FeatureFlag]bool {
	ctx := context.Background()
	result := make(map[FeatureFlag]bool, len(Defaults))
	for flag := range Defaults {
		result[flag] = m.IsEnabled(ctx, flag)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for k, v := range m.flags {
		result[k] = v
	}
	return result
}
