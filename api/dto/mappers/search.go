// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Keeps domain JSON tags independent of the public API shape

package mappers

import (
	"groundsearch-api/api/dto/responses"
	"groundsearch-api/core/domain"
	"groundsearch-api/core/interfaces"
)

// ToResultResponse converts a domain SearchResult
func ToResultResponse(r domain.SearchResult) responses.ResultResponse {
	return responses.ResultResponse{
		Title:     r.Title,
		URL:       r.URL,
		Snippet:   r.Snippet,
		Source:    r.Source,
		Synthetic: r.Synthetic,
	}
}

// ToPageResponse converts a domain PageBody
func ToPageResponse(p domain.PageBody) responses.PageResponse {
	return responses.PageResponse{
		Title:     p.Title,
		URL:       p.URL,
		Source:    p.Source,
		Content:   p.Content,
		Retrieved: p.Retrieved,
	}
}

// ToSearchResponse converts a RankedBundle. Slices are never nil.
func ToSearchResponse(b domain.RankedBundle) responses.SearchResponse {
	resp := responses.SearchResponse{
		Query:        b.Query,
		Results:      make([]responses.ResultResponse, 0, len(b.Results)),
		Pages:        make([]responses.PageResponse, 0, len(b.Pages)),
		UsedFallback: b.UsedFallback,
		ElapsedMs:    b.Elapsed.Milliseconds(),
	}
	for _, r := range b.Results {
		resp.Results = append(resp.Results, ToResultResponse(r))
	}
	for _, p := range b.Pages {
		resp.Pages = append(resp.Pages, ToPageResponse(p))
	}
	for _, s := range b.Sources {
		resp.Sources = append(resp.Sources, responses.SourceStatusResponse{
			Name:       s.Name,
			Count:      s.Count,
			Error:      s.Error,
			LowQuality: s.LowQuality,
		})
	}
	return resp
}

// ToGroundResponse converts a Grounding
func ToGroundResponse(g domain.Grounding) responses.GroundResponse {
	return responses.GroundResponse{
		Query:    g.Query,
		Searched: g.Searched,
		Context:  g.Context,
		Bundle:   ToSearchResponse(g.Bundle),
	}
}

// ToSourcesResponse converts registry listings
func ToSourcesResponse(infos []interfaces.SourceInfo) responses.SourcesResponse {
	resp := responses.SourcesResponse{Sources: make([]responses.SourceResponse, 0, len(infos))}
	for _, info := range infos {
		resp.Sources = append(resp.Sources, responses.SourceResponse{
			Name:       info.Name,
			Label:      info.Label,
			AccessMode: info.AccessMode,
			Rank:       info.Rank,
			Enabled:    info.Enabled,
		})
	}
	return resp
}
