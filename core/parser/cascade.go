// ABOUTME: Parser cascade runs a source's strategies in order until enough results are collected
// ABOUTME: Dedups by URL within the source and falls back to a single page record when empty

package parser

import (
	"fmt"
	"unicode/utf8"

	"groundsearch-api/core/domain"
	"groundsearch-api/core/quality"
	htmlutil "groundsearch-api/pkg/utils/html"
)

const (
	// MinResults stops the cascade once a source has produced this many records
	MinResults = 5

	// MaxResults caps the records kept per source
	MaxResults = 15

	fallbackSnippetLength = 300
)

// Result is what the cascade produced for one response
type Result struct {
	// Results are the validated, URL-deduplicated records in extraction order
	Results []domain.SearchResult

	// Ran lists the strategies that were invoked, in order
	Ran []string

	// LowQuality is set when the body was classified low quality
	LowQuality bool

	// QualityReason names the heuristic that fired
	QualityReason string
}

// Chain returns the site strategies followed by the generic pattern, link and aggressive steps
func Chain(site ...domain.ParseStrategy) []domain.ParseStrategy {
	out := make([]domain.ParseStrategy, 0, len(site)+3)
	out = append(out, site...)
	return append(out, Patterns(), MarkupLinks(), Aggressive())
}

// Run applies spec's strategies to in.
// Structured API sources never get the single-record fallback; their request URL is not a page.
func Run(spec domain.SourceSpec, in domain.ParseInput) Result {
	var res Result
	seen := make(map[string]bool)

	for _, strategy := range spec.Strategies {
		if len(res.Results) >= MinResults {
			break
		}
		res.Ran = append(res.Ran, strategy.Name)
		for _, candidate := range strategy.Attempt(in) {
			if len(res.Results) >= MaxResults {
				break
			}
			record, ok := accept(candidate, spec.Name)
			if !ok || seen[record.URL] {
				continue
			}
			seen[record.URL] = true
			res.Results = append(res.Results, record)
		}
	}

	if len(res.Results) > 0 {
		return res
	}

	text := plainText(in)
	verdict := quality.Classify(text)
	res.LowQuality = verdict.LowQuality
	res.QualityReason = verdict.Reason

	if spec.AccessMode == domain.StructuredAPI || verdict.LowQuality || !domain.IsUsableURL(in.RequestURL) {
		return res
	}
	if record, ok := fallbackRecord(spec, in, text); ok {
		res.Ran = append(res.Ran, "fallback")
		res.Results = append(res.Results, record)
	}
	return res
}

// accept revalidates a strategy candidate at the cascade boundary; malformed ones are dropped
func accept(c domain.SearchResult, source string) (domain.SearchResult, bool) {
	record, err := domain.NewSearchResult(c.Title, c.URL, c.Snippet, source)
	if err != nil || record.Title == "" {
		return domain.SearchResult{}, false
	}
	return record, true
}

func fallbackRecord(spec domain.SourceSpec, in domain.ParseInput, text string) (domain.SearchResult, bool) {
	snippet := truncate(text, fallbackSnippetLength)
	if snippet == "" {
		return domain.SearchResult{}, false
	}
	title := htmlutil.DefaultTitle
	if htmlutil.LooksLikeHTML(in.Text()) {
		title = htmlutil.ExtractTitle(in.Text())
	}
	if title == htmlutil.DefaultTitle {
		title = fmt.Sprintf("%s: %s", spec.Label, in.Query)
	}
	record, err := domain.NewSearchResult(title, in.RequestURL, snippet, spec.Name)
	if err != nil {
		return domain.SearchResult{}, false
	}
	return record, true
}

// plainText returns the body with markup removed, keeping line structure
func plainText(in domain.ParseInput) string {
	body := in.Text()
	if htmlutil.LooksLikeHTML(body) {
		return htmlutil.ToText(body)
	}
	return body
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
