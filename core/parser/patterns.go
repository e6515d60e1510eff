package parser

import (
	"regexp"
	"sort"
	"strings"

	"groundsearch-api/core/domain"
	"groundsearch-api/core/query"
)

const (
	maxTitleLength   = 120
	maxSnippetLength = 240
)

var (
	schemedURL = regexp.MustCompile(`https?://[^\s<>"'()\[\]{}，。、）】]+`)

	// "Some title - https://..." with -, –, —, | or : between them
	titleThenURL = regexp.MustCompile(`(?m)^[ \t]*(?:[-*•]|\d+[.)])?[ \t]*([^\n]{3,200}?)[ \t]+[-–—|:][ \t]+(https?://[^\s<>"'()\[\]{}]+)`)

	markdownNoise = regexp.MustCompile(`[#*_>` + "`" + `]+`)
)

// Patterns scans plain text for title/URL adjacency, URL lines titled by the
// previous line, and paragraphs that mention a URL and overlap the query
func Patterns() domain.ParseStrategy {
	return domain.ParseStrategy{Name: "patterns", Attempt: patternAttempt}
}

func patternAttempt(in domain.ParseInput) []domain.SearchResult {
	text := plainText(in)
	if text == "" {
		return nil
	}
	c := newCollector(in)

	for _, m := range titleThenURL.FindAllStringSubmatch(text, -1) {
		c.add(m[1], m[2], "")
	}

	lines := strings.Split(text, "\n")
	prev := ""
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if loc := schemedURL.FindStringIndex(trimmed); loc != nil && prev != "" {
			snippet := strings.TrimSpace(trimmed[:loc[0]] + " " + trimmed[loc[1]:])
			if snippet == "" {
				snippet = nextTextLine(lines, i)
			}
			c.add(prev, trimmed[loc[0]:loc[1]], snippet)
		}
		prev = withoutURLs(trimmed)
	}

	c.addAll(paragraphCandidates(text, query.Keywords(in.Query), in))
	return c.results
}

// paragraphCandidates scores URL-bearing paragraphs by keyword overlap, best first
func paragraphCandidates(text string, keywords []string, in domain.ParseInput) []domain.SearchResult {
	type scored struct {
		result domain.SearchResult
		score  int
	}
	var candidates []scored

	for _, para := range strings.Split(text, "\n\n") {
		rawURL := schemedURL.FindString(para)
		if rawURL == "" {
			continue
		}
		score := query.CountKeywords(para, keywords)
		if score == 0 {
			continue
		}
		u := NormalizeURL(rawURL, in.RequestURL)
		if u == "" || IsSelfLink(u, in.RequestURL) {
			continue
		}
		body := withoutURLs(para)
		title := firstLine(body)
		candidates = append(candidates, scored{
			result: domain.SearchResult{
				Title:   truncate(cleanTitle(title), maxTitleLength),
				URL:     u,
				Snippet: truncate(domain.CollapseSpace(body), maxSnippetLength),
			},
			score: score,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	out := make([]domain.SearchResult, 0, len(candidates))
	for _, s := range candidates {
		out = append(out, s.result)
	}
	return out
}

// collector normalizes and filters candidates for one strategy run
type collector struct {
	in      domain.ParseInput
	results []domain.SearchResult

	// allowSelf keeps links to the serving host; site selectors already point at results
	allowSelf bool
}

func newCollector(in domain.ParseInput) *collector {
	return &collector{in: in}
}

func (c *collector) add(title, rawURL, snippet string) {
	u := NormalizeURL(rawURL, c.in.RequestURL)
	if u == "" || (!c.allowSelf && IsSelfLink(u, c.in.RequestURL)) {
		return
	}
	title = cleanTitle(title)
	if title == "" {
		return
	}
	c.results = append(c.results, domain.SearchResult{
		Title:   truncate(title, maxTitleLength),
		URL:     u,
		Snippet: truncate(domain.CollapseSpace(snippet), maxSnippetLength),
	})
}

func (c *collector) addAll(results []domain.SearchResult) {
	c.results = append(c.results, results...)
}

func cleanTitle(s string) string {
	s = withoutURLs(s)
	s = markdownNoise.ReplaceAllString(s, " ")
	s = strings.Trim(domain.CollapseSpace(s), " -–—|:·")
	return s
}

func withoutURLs(s string) string {
	return strings.TrimSpace(schemedURL.ReplaceAllString(s, " "))
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func nextTextLine(lines []string, i int) string {
	for _, line := range lines[i+1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if schemedURL.MatchString(line) {
			return ""
		}
		return line
	}
	return ""
}
