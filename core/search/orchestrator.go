package search

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"groundsearch-api/core/domain"
	apperrors "groundsearch-api/core/errors"
)

// fetchAll queries every spec concurrently and waits for all of them.
// Each task has its own deadline and writes only its own slot once it settles;
// tasks never return an error, so one failure cannot cancel its siblings.
func (s *SearchService) fetchAll(ctx context.Context, specs []domain.SourceSpec, q string, settings domain.SearchSettings, generation int) []domain.FetchOutcome {
	outcomes := make([]domain.FetchOutcome, len(specs))
	timeout := s.cfg.SourceTimeout(generation)
	proxied := semaphore.NewWeighted(s.cfg.MaxConcurrentProxied)

	var g errgroup.Group
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			taskCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			if spec.AccessMode == domain.ProxiedMarkup {
				if err := proxied.Acquire(taskCtx, 1); err != nil {
					outcomes[i] = domain.FetchOutcome{
						Source: spec.Name,
						Err:    &apperrors.TransportError{Source: spec.Name, URL: spec.URLFor(q), Err: err},
					}
					return nil
				}
				defer proxied.Release(1)
			}

			outcomes[i] = s.fetchSource(taskCtx, spec, q, settings)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// flatten merges outcomes into one candidate list, keeping per-source extraction order
func flatten(outcomes []domain.FetchOutcome) []domain.SearchResult {
	var out []domain.SearchResult
	for _, o := range outcomes {
		out = append(out, o.Results...)
	}
	return out
}

func statuses(outcomes []domain.FetchOutcome) []domain.SourceStatus {
	out := make([]domain.SourceStatus, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, domain.StatusOf(o))
	}
	return out
}
