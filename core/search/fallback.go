package search

import (
	"context"
	"fmt"
	"net/url"

	"groundsearch-api/core/domain"
)

// FallbackSource is the Source of synthetic placeholder records
const FallbackSource = "fallback"

// fallback tries sources one at a time with escalating deadlines:
// the instant-answer API, each proxied source, then the direct markup source.
// The loop is bounded by the schedule length times the step count.
func (s *SearchService) fallback(ctx context.Context, q string, settings domain.SearchSettings) ([]domain.SearchResult, []domain.FetchOutcome) {
	steps := s.fallbackSteps(settings)
	var outcomes []domain.FetchOutcome

	for generation, timeout := range s.cfg.FallbackSchedule() {
		for _, spec := range steps {
			if ctx.Err() != nil {
				return Placeholder(q), outcomes
			}

			stepCtx, cancel := context.WithTimeout(ctx, timeout)
			outcome := s.fetchSource(stepCtx, spec, q, settings)
			cancel()
			outcomes = append(outcomes, outcome)

			if outcome.OK() {
				if ranked := Rank(outcome.Results, q); len(ranked) > 0 {
					s.logger.Info("Fallback source succeeded", map[string]interface{}{
						"source":     spec.Name,
						"generation": generation,
						"results":    len(ranked),
					})
					return ranked, outcomes
				}
			}
		}
	}

	s.logger.Warn("All sources exhausted", map[string]interface{}{
		"query":    q,
		"attempts": len(outcomes),
	})
	return Placeholder(q), outcomes
}

func (s *SearchService) fallbackSteps(settings domain.SearchSettings) []domain.SourceSpec {
	var steps []domain.SourceSpec
	if spec, ok := s.registry.FirstOf(domain.StructuredAPI); ok {
		steps = append(steps, spec)
	}
	if settings.ProxyAvailable() {
		steps = append(steps, s.registry.Proxied()...)
	}
	if spec, ok := s.registry.FirstOf(domain.DirectMarkup); ok {
		steps = append(steps, spec)
	}
	return steps
}

// Placeholder is the synthetic result set returned when no source produced anything
func Placeholder(q string) []domain.SearchResult {
	escaped := url.QueryEscape(q)
	return []domain.SearchResult{
		domain.NewSyntheticResult(
			"Web search unavailable",
			"",
			fmt.Sprintf("No web results could be retrieved for %q. Please try again in a moment, or search manually with one of the links below.", q),
			FallbackSource,
		),
		domain.NewSyntheticResult(
			fmt.Sprintf("Search Google for %q", q),
			"https://www.google.com/search?q="+escaped,
			"Open this search manually in Google.",
			FallbackSource,
		),
		domain.NewSyntheticResult(
			fmt.Sprintf("Search Bing for %q", q),
			"https://www.bing.com/search?q="+escaped,
			"Open this search manually in Bing.",
			FallbackSource,
		),
	}
}
