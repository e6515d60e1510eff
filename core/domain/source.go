// ABOUTME: Source domain models describing search backends and how their responses are parsed
// ABOUTME: SourceSpec values are built once by the registry and never mutated afterwards

package domain

import "fmt"

// AccessMode describes how a source is reached
type AccessMode int

const (
	// StructuredAPI sources return machine-readable JSON
	StructuredAPI AccessMode = iota

	// ProxiedMarkup sources are rendered through the page-reading proxy before parsing
	ProxiedMarkup

	// DirectMarkup sources are fetched directly and return HTML or XML
	DirectMarkup
)

// String returns the wire name of the access mode
func (m AccessMode) String() string {
	switch m {
	case StructuredAPI:
		return "structuredApi"
	case ProxiedMarkup:
		return "proxiedMarkup"
	case DirectMarkup:
		return "directMarkup"
	default:
		return fmt.Sprintf("accessMode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler
func (m AccessMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseInput is everything a parse strategy may look at
type ParseInput struct {
	// Source is the registry name of the source being parsed
	Source string

	// Query is the search query the response answers
	Query string

	// RequestURL is the source's own target URL (before proxy wrapping)
	RequestURL string

	// Body is the raw response body
	Body []byte
}

// Text returns the body as a string
func (in ParseInput) Text() string {
	return string(in.Body)
}

// ParseStrategy is one pure extraction step of the parser cascade
type ParseStrategy struct {
	// Name identifies the strategy in logs and tests
	Name string

	// Attempt extracts candidates from the input. It must not mutate the input.
	Attempt func(in ParseInput) []SearchResult
}

// SourceSpec is an immutable catalog entry for one search backend
type SourceSpec struct {
	// Name is the unique registry name, also used as SearchResult.Source
	Name string

	// Label is a human readable name
	Label string

	// AccessMode says whether the source is JSON, proxied markup or direct markup
	AccessMode AccessMode

	// Endpoint renders the target URL for a query
	Endpoint func(query string) string

	// Strategies run in order until enough results were collected
	Strategies []ParseStrategy
}

// URLFor returns the target URL for query, or "" when the spec has no endpoint
func (s SourceSpec) URLFor(query string) string {
	if s.Endpoint == nil {
		return ""
	}
	return s.Endpoint(query)
}

// FetchOutcome is the per-source result of one orchestration attempt
type FetchOutcome struct {
	// Source is the registry name of the source
	Source string `json:"source"`

	// Results holds the parsed candidates in extraction order
	Results []SearchResult `json:"results"`

	// Err is the reason the source produced nothing, if any
	Err error `json:"-"`

	// LowQuality is set when the response was classified as a login, error or navigation page
	LowQuality bool `json:"lowQuality,omitempty"`
}

// OK reports whether the outcome has results and no error
func (o FetchOutcome) OK() bool {
	return o.Err == nil && len(o.Results) > 0
}

// Reason returns the error text or ""
func (o FetchOutcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
