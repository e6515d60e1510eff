package parser

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"groundsearch-api/core/domain"
)

// schemed URLs, www. forms and bare domains with a common TLD
var urlShaped = regexp.MustCompile(`(?i)https?://[^\s<>"'()\[\]{}，。]+|www\.[^\s<>"'()\[\]{}，。]+|\b[a-z0-9][a-z0-9-]*(?:\.[a-z0-9-]+)*\.(?:com|org|net|cn|io|gov|edu|info|co)\b(?:/[^\s<>"'()\[\]{}，。]*)?`)

// Aggressive harvests every URL-shaped token and titles it with the nearest preceding text line
func Aggressive() domain.ParseStrategy {
	return domain.ParseStrategy{Name: "aggressive", Attempt: aggressiveAttempt}
}

func aggressiveAttempt(in domain.ParseInput) []domain.SearchResult {
	text := plainText(in)
	c := newCollector(in)
	lastText := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		locs := urlShaped.FindAllStringIndex(line, -1)
		rest := strings.TrimSpace(urlShaped.ReplaceAllString(line, " "))

		for _, loc := range locs {
			if loc[0] > 0 && line[loc[0]-1] == '@' {
				continue
			}
			token := line[loc[0]:loc[1]]
			title := lastText
			if title == "" {
				title = rest
			}
			if title == "" {
				title = hostOf(Absolutize(token, ""))
			}
			c.add(title, token, rest)
		}

		if utf8.RuneCountInString(rest) >= 3 {
			lastText = rest
		}
	}
	return c.results
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
