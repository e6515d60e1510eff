// ABOUTME: Output models handed to the prompt-assembly caller
// ABOUTME: RankedBundle, PageBody and Grounding are created per call and owned by the caller

package domain

import "time"

// PageBody is the retrieved text of one result page
type PageBody struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Source  string `json:"source"`
	Content string `json:"content"`

	// Retrieved is false when Content is a "could not be retrieved" placeholder
	Retrieved bool `json:"retrieved"`
}

// RankedBundle is the final output of a search call
type RankedBundle struct {
	// Query is the query that was searched
	Query string `json:"query"`

	// Results are deduplicated, scored and ordered best first
	Results []SearchResult `json:"results"`

	// Pages hold fetched bodies of the top results, in result order
	Pages []PageBody `json:"pages"`

	// Sources lists per-source outcomes of the parallel pass
	Sources []SourceStatus `json:"sources,omitempty"`

	// UsedFallback is set when the sequential fallback controller produced the results
	UsedFallback bool `json:"usedFallback"`

	// Elapsed is the wall time the call took
	Elapsed time.Duration `json:"elapsed"`
}

// IsDegenerate reports whether the bundle holds no real search data
func (b RankedBundle) IsDegenerate() bool {
	for _, r := range b.Results {
		if !r.Synthetic {
			return false
		}
	}
	return true
}

// SourceStatus summarises one FetchOutcome for callers and logs
type SourceStatus struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Error      string `json:"error,omitempty"`
	LowQuality bool   `json:"lowQuality,omitempty"`
}

// StatusOf converts an outcome into its summary
func StatusOf(o FetchOutcome) SourceStatus {
	return SourceStatus{
		Name:       o.Source,
		Count:      len(o.Results),
		Error:      o.Reason(),
		LowQuality: o.LowQuality,
	}
}

// Grounding is what the prompt-assembly caller receives for one user turn
type Grounding struct {
	// Message is the user message that was analysed
	Message string `json:"message"`

	// Query is the derived query, empty when no search was warranted
	Query string `json:"query,omitempty"`

	// Searched is false when the message did not warrant a search
	Searched bool `json:"searched"`

	// Bundle holds the search output (or a single fetched page for URL messages)
	Bundle RankedBundle `json:"bundle"`

	// Context is the formatted text block for the language model
	Context string `json:"context"`
}

// SearchSettings are read from external configuration at call time
type SearchSettings struct {
	// Enabled turns web search on or off
	Enabled bool

	// ProxyAPIKey is the bearer credential of the page-reading proxy; empty disables proxied sources
	ProxyAPIKey string

	// ProxiedSourcesEnabled allows proxied sources when a key is present
	ProxiedSourcesEnabled bool

	// PageBodiesEnabled allows the page body fetch step
	PageBodiesEnabled bool
}

// ProxyAvailable reports whether proxied sources may run
func (s SearchSettings) ProxyAvailable() bool {
	return s.ProxyAPIKey != "" && s.ProxiedSourcesEnabled
}
