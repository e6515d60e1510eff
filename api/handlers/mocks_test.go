package handlers

import (
	"context"

	"groundsearch-api/core/domain"
	"groundsearch-api/core/interfaces"
)

// mockSearchService is a function-field mock of interfaces.SearchService
type mockSearchService struct {
	searchFunc    func(ctx context.Context, q string) domain.RankedBundle
	fetchPageFunc func(ctx context.Context, url string) domain.PageBody
	groundFunc    func(ctx context.Context, msg string, condensed bool) domain.Grounding
	sourcesFunc   func(ctx context.Context) []interfaces.SourceInfo
}

func (m *mockSearchService) Search(ctx context.Context, q string) domain.RankedBundle {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, q)
	}
	return domain.RankedBundle{Query: q}
}

func (m *mockSearchService) FetchPage(ctx context.Context, url string) domain.PageBody {
	if m.fetchPageFunc != nil {
		return m.fetchPageFunc(ctx, url)
	}
	return domain.PageBody{URL: url}
}

func (m *mockSearchService) Ground(ctx context.Context, msg string, condensed bool) domain.Grounding {
	if m.groundFunc != nil {
		return m.groundFunc(ctx, msg, condensed)
	}
	return domain.Grounding{Message: msg}
}

func (m *mockSearchService) Sources(ctx context.Context) []interfaces.SourceInfo {
	if m.sourcesFunc != nil {
		return m.sourcesFunc(ctx)
	}
	return nil
}
