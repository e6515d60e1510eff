// ABOUTME: Search service aggregates results from many web sources for LLM grounding
// ABOUTME: Runs the parallel pass, ranking, sequential fallback and page body fetch; never fails

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"groundsearch-api/core/domain"
	"groundsearch-api/core/interfaces"
	"groundsearch-api/core/query"
	"groundsearch-api/core/reader"
	"groundsearch-api/core/sources"
)

// SearchService implements interfaces.SearchService
type SearchService struct {
	deps     interfaces.Dependencies
	registry *sources.Registry
	reader   interfaces.PageReader
	logger   interfaces.Logger
	cfg      Config
}

// NewSearchService creates a new search service instance.
// A nil registry uses the default catalog; a nil reader uses the proxy page fetcher.
func NewSearchService(deps interfaces.Dependencies, registry *sources.Registry, pageReader interfaces.PageReader, cfg Config) *SearchService {
	cfg = cfg.withDefaults()
	if registry == nil {
		registry = sources.New()
	}
	logger := deps.Logger
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	if pageReader == nil {
		pageReader = reader.NewService(deps.HTTPClient, deps.Cache, logger, cfg.ProxyURL).WithTimeout(cfg.PageTimeout)
	}
	return &SearchService{
		deps:     deps,
		registry: registry,
		reader:   pageReader,
		logger:   logger,
		cfg:      cfg,
	}
}

// settings reads the externally owned configuration for this call
func (s *SearchService) settings(ctx context.Context) domain.SearchSettings {
	if s.deps.Settings == nil {
		return domain.SearchSettings{Enabled: true, ProxiedSourcesEnabled: true, PageBodiesEnabled: true}
	}
	return s.deps.Settings.SearchSettings(ctx)
}

// Search runs the full pipeline for q and always returns a bundle.
// A disabled search or an empty query yields an empty bundle.
func (s *SearchService) Search(ctx context.Context, q string) domain.RankedBundle {
	start := time.Now()
	q = strings.TrimSpace(q)
	bundle := domain.RankedBundle{Query: q, Results: []domain.SearchResult{}}

	settings := s.settings(ctx)
	if q == "" || !settings.Enabled {
		bundle.Elapsed = time.Since(start)
		return bundle
	}

	cacheKey := bundleCacheKey(q, settings)
	if cached, ok := s.cachedBundle(ctx, cacheKey); ok {
		return cached
	}

	invocation := uuid.NewString()
	specs := s.registry.Active(settings)
	s.logger.Info("Search started", map[string]interface{}{
		"invocation": invocation,
		"query":      q,
		"sources":    len(specs),
	})

	outcomes := s.fetchAll(ctx, specs, q, settings, 0)
	bundle.Sources = statuses(outcomes)
	bundle.Results = Rank(flatten(outcomes), q)

	if len(bundle.Results) == 0 {
		results, fallbackOutcomes := s.fallback(ctx, q, settings)
		bundle.Results = results
		bundle.UsedFallback = true
		bundle.Sources = append(bundle.Sources, statuses(fallbackOutcomes)...)
	}

	if settings.PageBodiesEnabled && !bundle.IsDegenerate() && s.cfg.PageFetchLimit > 0 {
		bundle.Pages = s.reader.FetchPages(ctx, realResults(bundle.Results), s.cfg.PageFetchLimit, settings.ProxyAPIKey)
	}

	bundle.Elapsed = time.Since(start)
	s.logger.Info("Search finished", map[string]interface{}{
		"invocation":   invocation,
		"results":      len(bundle.Results),
		"pages":        len(bundle.Pages),
		"usedFallback": bundle.UsedFallback,
		"elapsedMs":    bundle.Elapsed.Milliseconds(),
	})

	if !bundle.IsDegenerate() {
		s.storeBundle(ctx, cacheKey, bundle)
	}
	return bundle
}

// FetchPage retrieves a single page body through the reading proxy
func (s *SearchService) FetchPage(ctx context.Context, rawURL string) domain.PageBody {
	rawURL = strings.TrimSpace(rawURL)
	result := domain.SearchResult{URL: rawURL, Source: "direct"}
	if !domain.IsUsableURL(rawURL) {
		return reader.Placeholder(result)
	}
	return s.reader.FetchPage(ctx, result, s.settings(ctx).ProxyAPIKey)
}

// Ground derives a query from a user message, searches or fetches, and formats the context
func (s *SearchService) Ground(ctx context.Context, message string, condensed bool) domain.Grounding {
	g := domain.Grounding{Message: message}

	extracted, ok := query.Extract(message)
	if !ok || !s.settings(ctx).Enabled {
		return g
	}
	g.Query = extracted.Query
	g.Searched = true

	if extracted.IsURL {
		page := s.FetchPage(ctx, extracted.Query)
		g.Bundle = domain.RankedBundle{
			Query:   extracted.Query,
			Results: []domain.SearchResult{},
			Pages:   []domain.PageBody{page},
		}
	} else {
		g.Bundle = s.Search(ctx, extracted.Query)
	}
	g.Context = FormatContext(g.Bundle, condensed)
	return g
}

// Sources lists the registry with the enabled state under the current settings
func (s *SearchService) Sources(ctx context.Context) []interfaces.SourceInfo {
	settings := s.settings(ctx)
	active := make(map[string]bool)
	if settings.Enabled {
		for _, spec := range s.registry.Active(settings) {
			active[spec.Name] = true
		}
	}

	all := s.registry.All()
	out := make([]interfaces.SourceInfo, 0, len(all))
	for _, spec := range all {
		out = append(out, interfaces.SourceInfo{
			Name:       spec.Name,
			Label:      spec.Label,
			AccessMode: spec.AccessMode.String(),
			Rank:       sources.Rank(spec.Name),
			Enabled:    active[spec.Name],
		})
	}
	return out
}

func realResults(results []domain.SearchResult) []domain.SearchResult {
	out := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if !r.Synthetic {
			out = append(out, r)
		}
	}
	return out
}

// bundleCacheKey varies with the settings that change the active source set
func bundleCacheKey(q string, settings domain.SearchSettings) string {
	scope := "direct"
	if settings.ProxyAvailable() {
		scope = "proxied"
	}
	pages := "nopages"
	if settings.PageBodiesEnabled {
		pages = "pages"
	}
	return fmt.Sprintf("search:web:%s:%s:%s", scope, pages, strings.ToLower(q))
}

func (s *SearchService) cachedBundle(ctx context.Context, key string) (domain.RankedBundle, bool) {
	if s.deps.Cache == nil || s.cfg.CacheTTL <= 0 {
		return domain.RankedBundle{}, false
	}
	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil || data == nil {
		return domain.RankedBundle{}, false
	}
	var bundle domain.RankedBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return domain.RankedBundle{}, false
	}
	s.logger.Debug("Search served from cache", map[string]interface{}{"key": key})
	return bundle, true
}

func (s *SearchService) storeBundle(ctx context.Context, key string, bundle domain.RankedBundle) {
	if s.deps.Cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(bundle)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
		s.logger.Debug("Failed to cache search bundle", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
