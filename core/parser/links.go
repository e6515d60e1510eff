package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"groundsearch-api/core/domain"
	htmlutil "groundsearch-api/pkg/utils/html"
)

const linkWindow = 100

var (
	anchorTag    = regexp.MustCompile(`(?is)<a\b[^>]*?\bhref\s*=\s*["']([^"']+)["'][^>]*>(.*?)</a>`)
	markdownLink = regexp.MustCompile(`\[([^\[\]\n]{2,200})\]\(\s*<?(https?://[^)\s>]+)>?(?:\s+"[^"]*")?\s*\)`)

	danglingTagStart = regexp.MustCompile(`^[^<]*?>`)
	danglingTagEnd   = regexp.MustCompile(`<[^>]*$`)
)

// MarkupLinks harvests anchor and markdown links anywhere in the body,
// using the surrounding text as snippet
func MarkupLinks() domain.ParseStrategy {
	return domain.ParseStrategy{Name: "links", Attempt: linksAttempt}
}

func linksAttempt(in domain.ParseInput) []domain.SearchResult {
	body := in.Text()
	c := newCollector(in)

	for _, loc := range anchorTag.FindAllStringSubmatchIndex(body, -1) {
		href := htmlutil.DecodeEntities(body[loc[2]:loc[3]])
		title := htmlutil.StripHTML(body[loc[4]:loc[5]])
		if utf8.RuneCountInString(title) < 2 {
			continue
		}
		c.add(title, href, markupWindow(body, loc[0], loc[1], title))
	}

	for _, loc := range markdownLink.FindAllStringSubmatchIndex(body, -1) {
		title := body[loc[2]:loc[3]]
		c.add(title, body[loc[4]:loc[5]], textWindow(body, loc[0], loc[1], title))
	}
	return c.results
}

// markupWindow returns the text around an anchor, tags removed
func markupWindow(body string, start, end int, title string) string {
	w := danglingTagStart.ReplaceAllString(window(body, start, end), "")
	w = danglingTagEnd.ReplaceAllString(w, "")
	return withoutTitle(htmlutil.StripHTML(w), title)
}

// textWindow returns the text around a markdown link with link syntax reduced to its text
func textWindow(body string, start, end int, title string) string {
	w := markdownLink.ReplaceAllString(window(body, start, end), "$1")
	return withoutTitle(domain.CollapseSpace(withoutURLs(w)), title)
}

func withoutTitle(s, title string) string {
	return strings.TrimSpace(strings.Replace(s, title, " ", 1))
}

// window returns body[start:end] widened by linkWindow runes on each side
func window(body string, start, end int) string {
	for i := 0; i < linkWindow && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(body[:start])
		start -= size
	}
	for i := 0; i < linkWindow && end < len(body); i++ {
		_, size := utf8.DecodeRuneInString(body[end:])
		end += size
	}
	return body[start:end]
}
