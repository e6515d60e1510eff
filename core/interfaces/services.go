// ABOUTME: Service interfaces for the search core
// ABOUTME: Handlers and the library facade depend on these rather than concrete services

package interfaces

import (
	"context"

	"groundsearch-api/core/domain"
)

// SettingsProvider returns the externally owned search settings.
// It is consulted on every call, never cached by the core.
type SettingsProvider interface {
	SearchSettings(ctx context.Context) domain.SearchSettings
}

// SettingsFunc adapts a function to SettingsProvider
type SettingsFunc func(ctx context.Context) domain.SearchSettings

// SearchSettings calls f
func (f SettingsFunc) SearchSettings(ctx context.Context) domain.SearchSettings {
	return f(ctx)
}

// SearchService aggregates web search results for grounding
type SearchService interface {
	// Search runs the full pipeline for query. It never fails.
	Search(ctx context.Context, query string) domain.RankedBundle

	// FetchPage retrieves a single page body. It never fails.
	FetchPage(ctx context.Context, url string) domain.PageBody

	// Ground derives a query from a user message and builds the grounding context.
	Ground(ctx context.Context, message string, condensed bool) domain.Grounding

	// Sources lists the registry with per-source enabled state for the current settings.
	Sources(ctx context.Context) []SourceInfo
}

// PageReader fetches rendered page text through the reading proxy
type PageReader interface {
	// FetchPage retrieves one page. Failures produce a placeholder body.
	FetchPage(ctx context.Context, result domain.SearchResult, apiKey string) domain.PageBody

	// FetchPages retrieves up to limit pages concurrently, preserving input order.
	FetchPages(ctx context.Context, results []domain.SearchResult, limit int, apiKey string) []domain.PageBody
}

// SourceInfo describes one registry entry for listings
type SourceInfo struct {
	Name       string `json:"name"`
	Label      string `json:"label"`
	AccessMode string `json:"accessMode"`
	Rank       int    `json:"rank"`
	Enabled    bool   `json:"enabled"`
}
