// ABOUTME: Query extractor decides whether a user turn warrants a web search
// ABOUTME: Returns a URL verbatim, a cleaned query string, or nothing

package query

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxQueryLength caps the derived query, in characters
	MaxQueryLength = 100

	// shortMessageLength is the length under which any message is treated as searchable
	shortMessageLength = 50
)

var (
	urlPattern = regexp.MustCompile(`https?://[^\s<>"'\x{3000}-\x{303F}\x{FF01}-\x{FF0F}]+`)

	// explicit search verbs, checked as substrings (CJK) or words (latin)
	searchVerbs = []string{
		"搜索", "搜一下", "搜搜", "查询", "查一下", "查查", "检索", "百度一下", "谷歌",
		"search", "look up", "lookup", "google", "find out", "find",
	}

	// recency and temporal markers
	recencyMarkers = []string{
		"最新", "今天", "今日", "昨天", "现在", "目前", "当前", "近期", "最近", "本周", "今年", "新闻", "实时", "行情",
		"latest", "today", "yesterday", "now", "current", "currently", "recent", "recently", "this week", "news", "2024", "2025", "2026",
	}

	// question words, in addition to question marks
	questionWords = []string{
		"什么", "怎么", "怎样", "如何", "为什么", "为何", "哪里", "哪个", "哪些", "多少", "谁", "吗", "呢", "是否",
		"what", "how", "why", "when", "where", "who", "which", "is there", "are there",
	}

	// stopWords are removed before the query is sent out: pronouns, politeness, search verbs.
	// Single-character CJK entries only match as standalone tokens so 其他 keeps its 他.
	stopWords = []string{
		"请帮我", "帮我", "帮忙", "麻烦你", "麻烦", "请问", "请", "谢谢", "一下",
		"我们", "你们", "他们", "我", "你", "他", "她", "它",
		"搜索", "搜一下", "搜搜", "查询", "查一下", "查查", "检索", "百度一下",
		"please", "could you", "can you", "would you", "help me", "thanks", "thank you",
		"i", "me", "my", "you", "your", "we", "us", "our",
		"search for", "search", "look up", "lookup", "google", "find out", "find",
	}

	punctuation = regexp.MustCompile(`[\p{P}\p{S}]+`)
)

// Result is the outcome of Extract
type Result struct {
	// Query is the derived query or the URL found in the message
	Query string

	// IsURL is set when Query is a URL that should be fetched rather than searched
	IsURL bool
}

// Extract analyses a user message. ok is false when no search is warranted.
// It never panics; empty or whitespace-only input yields ok == false.
func Extract(message string) (Result, bool) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return Result{}, false
	}

	if u := FindURL(trimmed); u != "" {
		return Result{Query: u, IsURL: true}, true
	}

	if !HasSearchIntent(trimmed) {
		return Result{}, false
	}

	cleaned := Clean(trimmed)
	if cleaned == "" {
		cleaned = truncateRunes(trimmed, MaxQueryLength)
	}
	return Result{Query: cleaned}, true
}

// FindURL returns the first absolute http(s) URL in text, without trailing punctuation
func FindURL(text string) string {
	match := urlPattern.FindString(text)
	if match == "" {
		return ""
	}
	return strings.TrimRight(match, ".,;:!?)]}>'\"")
}

// HasSearchIntent reports whether any search signal fires for message
func HasSearchIntent(message string) bool {
	lower := strings.ToLower(message)

	if utf8.RuneCountInString(strings.TrimSpace(message)) < shortMessageLength {
		return true
	}
	if strings.ContainsAny(message, "?？") {
		return true
	}
	return containsAny(lower, searchVerbs) || containsAny(lower, recencyMarkers) || containsAny(lower, questionWords)
}

// Clean strips stop words (case-insensitively) and punctuation, collapses whitespace
// and caps the length. The remaining text keeps its original casing.
func Clean(message string) string {
	text := punctuation.ReplaceAllString(message, " ")

	for _, w := range stopWords {
		text = removeTerm(text, w)
	}

	text = strings.Join(strings.Fields(text), " ")
	return truncateRunes(text, MaxQueryLength)
}

// containsAny checks CJK terms as substrings and latin terms on word boundaries
func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if isLatin(term) {
			if indexWord(lower, term) >= 0 {
				return true
			}
			continue
		}
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// removeTerm deletes every occurrence of term from text. Latin terms match on word
// boundaries ignoring ASCII case; single-character CJK terms match only when standalone.
func removeTerm(text, term string) string {
	var glued func(rune) bool
	switch {
	case isLatin(term):
		glued = isWordRune
	case utf8.RuneCountInString(term) == 1:
		glued = isLetterOrDigit
	default:
		return strings.ReplaceAll(text, term, " ")
	}
	for {
		idx := indexBounded(asciiLower(text), term, glued)
		if idx < 0 {
			return text
		}
		text = text[:idx] + " " + text[idx+len(term):]
	}
}

// indexWord finds term in text where it is not glued to other latin letters or digits
func indexWord(text, term string) int {
	return indexBounded(text, term, isWordRune)
}

func indexBounded(text, term string, glued func(rune) bool) int {
	offset := 0
	for {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return -1
		}
		start := offset + idx
		end := start + len(term)
		if boundaryBefore(text, start, glued) && boundaryAfter(text, end, glued) {
			return start
		}
		offset = start + 1
		if offset >= len(text) {
			return -1
		}
	}
}

func boundaryBefore(text string, i int, glued func(rune) bool) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !glued(r)
}

func boundaryAfter(text string, i int, glued func(rune) bool) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !glued(r)
}

func isWordRune(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func isLetterOrDigit(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// asciiLower lowercases A-Z only, so byte offsets match the input
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func isLatin(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}
