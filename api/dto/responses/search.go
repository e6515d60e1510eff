// ABOUTME: Response DTOs for the search API endpoints
// ABOUTME: Durations are rendered in milliseconds for clients

package responses

// ResultResponse is one ranked search result
type ResultResponse struct {
	Title     string `json:"title" doc:"Result headline"`
	URL       string `json:"url" doc:"Result address"`
	Snippet   string `json:"snippet" doc:"Short excerpt"`
	Source    string `json:"source" doc:"Search source that produced the result"`
	Synthetic bool   `json:"synthetic,omitempty" doc:"Placeholder record produced when no source answered"`
}

// PageResponse is the fetched body of one result page
type PageResponse struct {
	Title     string `json:"title" doc:"Page title"`
	URL       string `json:"url" doc:"Page address"`
	Source    string `json:"source,omitempty" doc:"Source of the result the page belongs to"`
	Content   string `json:"content" doc:"Readable page text, truncated"`
	Retrieved bool   `json:"retrieved" doc:"False when content is a placeholder"`
}

// SourceStatusResponse summarises one source in the parallel pass
type SourceStatusResponse struct {
	Name       string `json:"name" doc:"Source name"`
	Count      int    `json:"count" doc:"Number of results the source returned"`
	Error      string `json:"error,omitempty" doc:"Why the source returned nothing"`
	LowQuality bool   `json:"low_quality,omitempty" doc:"Source answered with a login, error, or navigation page"`
}

// SearchResponse is a ranked bundle
type SearchResponse struct {
	Query        string                 `json:"query" doc:"Query that was searched"`
	Results      []ResultResponse       `json:"results" doc:"Deduplicated results, best first"`
	Pages        []PageResponse         `json:"pages" doc:"Bodies of the top results"`
	Sources      []SourceStatusResponse `json:"sources,omitempty" doc:"Per-source outcomes"`
	UsedFallback bool                   `json:"used_fallback" doc:"Results came from the sequential fallback"`
	ElapsedMs    int64                  `json:"elapsed_ms" doc:"Wall time of the search"`
}

// GroundResponse carries the grounding of one chat message
type GroundResponse struct {
	Query    string         `json:"query,omitempty" doc:"Derived query, empty when no search was warranted"`
	Searched bool           `json:"searched" doc:"Whether a search or fetch ran"`
	Context  string         `json:"context" doc:"Formatted context block for the language model"`
	Bundle   SearchResponse `json:"bundle" doc:"Search output"`
}

// ExtractQueryResponse is the query extractor's verdict
type ExtractQueryResponse struct {
	ShouldSearch bool   `json:"should_search" doc:"Whether the message warrants a search"`
	Query        string `json:"query,omitempty" doc:"Derived query or URL"`
	IsURL        bool   `json:"is_url" doc:"Query is a URL to fetch directly"`
}

// SourceResponse describes one registry entry
type SourceResponse struct {
	Name       string `json:"name" doc:"Registry name"`
	Label      string `json:"label" doc:"Human-readable label"`
	AccessMode string `json:"access_mode" doc:"structuredApi, directMarkup, or proxiedMarkup"`
	Rank       int    `json:"rank" doc:"Priority rank, lower is better"`
	Enabled    bool   `json:"enabled" doc:"Active under the current settings"`
}

// SourcesResponse lists the registry
type SourcesResponse struct {
	Sources []SourceResponse `json:"sources" doc:"All registered sources"`
}
