// ABOUTME: Search domain models for aggregated web search results
// ABOUTME: Defines the validated SearchResult record shared by parsers, ranking and callers

package domain

import (
	"errors"
	"net/url"
	"strings"
)

// SearchResult is a single candidate returned by a search source.
// Construct it with NewSearchResult so the URL invariant holds.
type SearchResult struct {
	// Title is the result headline
	Title string `json:"title"`

	// URL is the absolute http(s) address of the result
	URL string `json:"url"`

	// Snippet is a short excerpt shown under the title
	Snippet string `json:"snippet"`

	// Source is the registry name of the backend that produced the result
	Source string `json:"source"`

	// Synthetic marks placeholder records produced when no real data was obtained
	Synthetic bool `json:"synthetic,omitempty"`
}

var (
	// ErrEmptyURL is returned when a candidate has no URL at all
	ErrEmptyURL = errors.New("search result url is empty")

	// ErrMalformedURL is returned when a candidate URL is not absolute http(s)
	ErrMalformedURL = errors.New("search result url is not an absolute http(s) url")
)

// NewSearchResult validates and builds a SearchResult.
// Whitespace is collapsed in title and snippet; the URL must be absolute.
func NewSearchResult(title, rawURL, snippet, source string) (SearchResult, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return SearchResult{}, ErrEmptyURL
	}
	if !IsUsableURL(rawURL) {
		return SearchResult{}, ErrMalformedURL
	}

	return SearchResult{
		Title:   CollapseSpace(title),
		URL:     rawURL,
		Snippet: CollapseSpace(snippet),
		Source:  source,
	}, nil
}

// NewSyntheticResult builds a placeholder record. Synthetic records skip URL validation
// only when url is empty; any URL given must still be usable.
func NewSyntheticResult(title, rawURL, snippet, source string) SearchResult {
	r := SearchResult{
		Title:     CollapseSpace(title),
		Snippet:   CollapseSpace(snippet),
		Source:    source,
		Synthetic: true,
	}
	if IsUsableURL(rawURL) {
		r.URL = rawURL
	}
	return r
}

// IsValid reports whether the result can take part in dedup and ranking
func (r SearchResult) IsValid() bool {
	return r.Title != "" && IsUsableURL(r.URL)
}

// Host returns the lowercase host of the result URL, or "" when it cannot be parsed
func (r SearchResult) Host() string {
	u, err := url.Parse(r.URL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// IsUsableURL reports whether s is an absolute http or https URL with a host
func IsUsableURL(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\n\r") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}
	return strings.Contains(host, ".") || host == "localhost" || isIPHost(host)
}

func isIPHost(host string) bool {
	for _, r := range host {
		if (r < '0' || r > '9') && r != '.' && r != ':' {
			return false
		}
	}
	return true
}

// CollapseSpace trims s and folds every whitespace run into a single space
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
