// ABOUTME: Public types of the groundsearch library
// ABOUTME: Aliases of the core domain types so callers need not import internal packages

package groundsearch

import (
	"groundsearch-api/core/domain"
	"groundsearch-api/core/interfaces"
)

type (
	// Result is one ranked search result
	Result = domain.SearchResult

	// Page is the fetched body of one result page
	Page = domain.PageBody

	// Bundle is the output of Search
	Bundle = domain.RankedBundle

	// Grounding is the output of Ground
	Grounding = domain.Grounding

	// Settings are the call-time switches consulted on every search
	Settings = domain.SearchSettings

	// SourceInfo describes one registered source
	SourceInfo = interfaces.SourceInfo
)

// QueryDecision is the verdict of ExtractQuery
type QueryDecision struct {
	// ShouldSearch is false when the message does not warrant a search
	ShouldSearch bool

	// Query is the derived query, or the URL to fetch when IsURL is set
	Query string
	IsURL bool
}
