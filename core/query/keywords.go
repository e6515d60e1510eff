package query

import (
	"strings"
	"unicode/utf8"
)

// Keywords splits a query into distinct lowercase terms used for scoring.
// Single-letter latin terms are dropped; CJK runs are kept whole.
func Keywords(q string) []string {
	text := punctuation.ReplaceAllString(strings.ToLower(q), " ")
	seen := make(map[string]bool)
	var out []string
	for _, f := range strings.Fields(text) {
		if isLatin(f) && utf8.RuneCountInString(f) < 2 {
			continue
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// CountKeywords returns how many of keywords occur in text, case-insensitively
func CountKeywords(text string, keywords []string) int {
	if text == "" || len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	n := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			n++
		}
	}
	return n
}
