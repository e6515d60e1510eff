package search

import (
	"net/url"
	"sort"
	"strings"

	"groundsearch-api/core/domain"
	"groundsearch-api/core/query"
	"groundsearch-api/core/sources"
)

const (
	// MaxRankedResults is how many results a bundle returns
	MaxRankedResults = 10

	titlePrefixLength = 50
)

var trustedSuffixes = []string{".com", ".org"}

// NormalizeURL derives the cross-source dedup key: lowercase host and path,
// ignoring scheme, query, fragment and a trailing slash
func NormalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return strings.ToLower(strings.TrimSuffix(u.Host+u.EscapedPath(), "/"))
}

// DedupKey combines the normalized URL with the first 50 characters of the title
func DedupKey(r domain.SearchResult) string {
	title := []rune(r.Title)
	if len(title) > titlePrefixLength {
		title = title[:titlePrefixLength]
	}
	return NormalizeURL(r.URL) + "|" + string(title)
}

// Dedupe drops records without title or usable URL and keeps the first of each key
func Dedupe(results []domain.SearchResult) []domain.SearchResult {
	seen := make(map[string]bool, len(results))
	out := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if !r.IsValid() {
			continue
		}
		key := DedupKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// Score computes the relevance of r for the given query keywords
func Score(r domain.SearchResult, keywords []string) int {
	score := (11 - sources.Rank(r.Source)) * 10
	score += 5 * query.CountKeywords(r.Title, keywords)
	score += 2 * query.CountKeywords(r.Snippet, keywords)
	host := r.Host()
	for _, suffix := range trustedSuffixes {
		if strings.HasSuffix(host, suffix) {
			score++
			break
		}
	}
	return score
}

// Rank dedupes, scores and stably sorts results, returning at most MaxRankedResults
func Rank(results []domain.SearchResult, q string) []domain.SearchResult {
	unique := Dedupe(results)
	keywords := query.Keywords(q)

	type scored struct {
		result domain.SearchResult
		score  int
	}
	items := make([]scored, len(unique))
	for i, r := range unique {
		items[i] = scored{result: r, score: Score(r, keywords)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	if len(items) > MaxRankedResults {
		items = items[:MaxRankedResults]
	}
	out := make([]domain.SearchResult, len(items))
	for i, it := range items {
		out[i] = it.result
	}
	return out
}
