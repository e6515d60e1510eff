package config

import (
	"context"
	"os"

	"groundsearch-api/core/domain"
	"groundsearch-api/pkg/featureflags"
)

// RuntimeSettings supplies search settings at call time. The proxy key is
// read from the environment on every call, so rotating it needs no restart.
type RuntimeSettings struct {
	Flags featureflags.Manager

	// Lookup reads an environment variable; nil uses os.Getenv.
	Lookup func(key string) string
}

// NewRuntimeSettings wires a settings provider to flags.
func NewRuntimeSettings(flags featureflags.Manager) *RuntimeSettings {
	return &RuntimeSettings{Flags: flags}
}

// SearchSettings implements interfaces.SettingsProvider.
func (r *RuntimeSettings) SearchSettings(ctx context.Context) domain.SearchSettings {
	lookup := r.Lookup
	if lookup == nil {
		lookup = os.Getenv
	}
	flags := r.Flags
	if flags == nil {
		flags = featureflags.NewStaticManager(nil)
	}

	return domain.SearchSettings{
		Enabled:               flags.IsEnabled(ctx, featureflags.WebSearchEnabled),
		ProxyAPIKey:           lookup(EnvProxyAPIKey),
		ProxiedSourcesEnabled: flags.IsEnabled(ctx, featureflags.ProxiedSources),
		PageBodiesEnabled:     flags.IsEnabled(ctx, featureflags.PageBodies),
	}
}
