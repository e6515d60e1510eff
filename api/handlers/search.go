// ABOUTME: Search handlers for the Huma API
// ABOUTME: Exposes search, page fetch, grounding, query extraction, and the source listing

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"groundsearch-api/api/dto/mappers"
	"groundsearch-api/api/dto/requests"
	"groundsearch-api/api/dto/responses"
	"groundsearch-api/core/domain"
	"groundsearch-api/core/errors"
	"groundsearch-api/core/interfaces"
	"groundsearch-api/core/query"
)

// SearchHandler serves the search engine over HTTP
type SearchHandler struct {
	searchService interfaces.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService interfaces.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// RegisterRoutes registers all search-related routes
func (h *SearchHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodPost,
		Path:        "/search",
		Summary:     "Search the web",
		Description: "Queries every enabled source in parallel and returns deduplicated, ranked results with page bodies",
		Tags:        []string{"Search"},
	}, h.Search)

	huma.Register(api, huma.Operation{
		OperationID: "fetchPage",
		Method:      http.MethodPost,
		Path:        "/fetch",
		Summary:     "Fetch one page",
		Description: "Retrieves the readable text of a single page through the reading proxy",
		Tags:        []string{"Search"},
	}, h.Fetch)

	huma.Register(api, huma.Operation{
		OperationID: "ground",
		Method:      http.MethodPost,
		Path:        "/ground",
		Summary:     "Ground a chat message",
		Description: "Derives a query from the message, searches or fetches, and formats a context block",
		Tags:        []string{"Search"},
	}, h.Ground)

	huma.Register(api, huma.Operation{
		OperationID: "extractQuery",
		Method:      http.MethodPost,
		Path:        "/extract-query",
		Summary:     "Derive a query from a message",
		Tags:        []string{"Diagnostics"},
	}, h.ExtractQuery)

	huma.Register(api, huma.Operation{
		OperationID: "listSources",
		Method:      http.MethodGet,
		Path:        "/sources",
		Summary:     "List search sources",
		Description: "Lists every registered source with its rank and whether it is active under current settings",
		Tags:        []string{"Diagnostics"},
	}, h.Sources)
}

// SearchInput defines the input for the Search operation
type SearchInput struct {
	Body requests.SearchRequest
}

// SearchOutput defines the output for the Search operation
type SearchOutput struct {
	Body responses.SearchResponse
}

// Search handles POST /search
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	q := strings.TrimSpace(input.Body.Query)
	if q == "" {
		return nil, toHumaError(&errors.ValidationError{Field: "query", Message: "must not be blank"})
	}

	bundle := h.searchService.Search(ctx, q)
	return &SearchOutput{Body: mappers.ToSearchResponse(bundle)}, nil
}

// FetchInput defines the input for the Fetch operation
type FetchInput struct {
	Body requests.FetchRequest
}

// FetchOutput defines the output for the Fetch operation
type FetchOutput struct {
	Body responses.PageResponse
}

// Fetch handles POST /fetch
func (h *SearchHandler) Fetch(ctx context.Context, input *FetchInput) (*FetchOutput, error) {
	u := strings.TrimSpace(input.Body.URL)
	if !domain.IsUsableURL(u) {
		return nil, toHumaError(&errors.ValidationError{Field: "url", Message: "must be an absolute http(s) URL"})
	}

	page := h.searchService.FetchPage(ctx, u)
	return &FetchOutput{Body: mappers.ToPageResponse(page)}, nil
}

// GroundInput defines the input for the Ground operation
type GroundInput struct {
	Body requests.GroundRequest
}

// GroundOutput defines the output for the Ground operation
type GroundOutput struct {
	Body responses.GroundResponse
}

// Ground handles POST /ground
func (h *SearchHandler) Ground(ctx context.Context, input *GroundInput) (*GroundOutput, error) {
	g := h.searchService.Ground(ctx, input.Body.Message, input.Body.Condensed)
	return &GroundOutput{Body: mappers.ToGroundResponse(g)}, nil
}

// ExtractQueryInput defines the input for the ExtractQuery operation
type ExtractQueryInput struct {
	Body requests.ExtractQueryRequest
}

// ExtractQueryOutput defines the output for the ExtractQuery operation
type ExtractQueryOutput struct {
	Body responses.ExtractQueryResponse
}

// ExtractQuery handles POST /extract-query
func (h *SearchHandler) ExtractQuery(ctx context.Context, input *ExtractQueryInput) (*ExtractQueryOutput, error) {
	res, ok := query.Extract(input.Body.Message)
	return &ExtractQueryOutput{Body: responses.ExtractQueryResponse{
		ShouldSearch: ok,
		Query:        res.Query,
		IsURL:        res.IsURL,
	}}, nil
}

// SourcesOutput defines the output for the Sources operation
type SourcesOutput struct {
	Body responses.SourcesResponse
}

// Sources handles GET /sources
func (h *SearchHandler) Sources(ctx context.Context, _ *struct{}) (*SourcesOutput, error) {
	return &SourcesOutput{Body: mappers.ToSourcesResponse(h.searchService.Sources(ctx))}, nil
}
