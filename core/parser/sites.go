// ABOUTME: Site-specific structured extraction, the first step of every source's cascade
// ABOUTME: JSON fields for the instant-answer API, RSS via gofeed, goquery selectors for result pages

package parser

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"groundsearch-api/core/domain"
	htmlutil "groundsearch-api/pkg/utils/html"
)

// DuckDuckGoInstant reads the instant-answer JSON: the abstract, direct results and related topics
func DuckDuckGoInstant() domain.ParseStrategy {
	return domain.ParseStrategy{Name: "duckduckgo_instant_json", Attempt: ddgInstantAttempt}
}

type ddgInstant struct {
	Heading        string     `json:"Heading"`
	AbstractText   string     `json:"AbstractText"`
	AbstractURL    string     `json:"AbstractURL"`
	AbstractSource string     `json:"AbstractSource"`
	Definition     string     `json:"Definition"`
	DefinitionURL  string     `json:"DefinitionURL"`
	Results        []ddgTopic `json:"Results"`
	RelatedTopics  []ddgTopic `json:"RelatedTopics"`
}

type ddgTopic struct {
	Text     string     `json:"Text"`
	FirstURL string     `json:"FirstURL"`
	Result   string     `json:"Result"`
	Name     string     `json:"Name"`
	Topics   []ddgTopic `json:"Topics"`
}

func ddgInstantAttempt(in domain.ParseInput) []domain.SearchResult {
	var payload ddgInstant
	if err := json.Unmarshal(in.Body, &payload); err != nil {
		return nil
	}
	c := newCollector(in)
	c.allowSelf = true

	if payload.AbstractURL != "" && payload.AbstractText != "" {
		title := payload.Heading
		if payload.AbstractSource != "" {
			title = payload.Heading + " - " + payload.AbstractSource
		}
		c.add(title, payload.AbstractURL, payload.AbstractText)
	}
	if payload.DefinitionURL != "" && payload.Definition != "" {
		c.add(payload.Heading, payload.DefinitionURL, payload.Definition)
	}
	for _, topic := range flattenTopics(payload.Results) {
		c.add(topicTitle(topic), topic.FirstURL, topic.Text)
	}
	for _, topic := range flattenTopics(payload.RelatedTopics) {
		c.add(topicTitle(topic), topic.FirstURL, topic.Text)
	}
	return c.results
}

// flattenTopics expands grouped topics ({"Name": ..., "Topics": [...]}) in order
func flattenTopics(topics []ddgTopic) []ddgTopic {
	var out []ddgTopic
	for _, t := range topics {
		if len(t.Topics) > 0 {
			out = append(out, flattenTopics(t.Topics)...)
			continue
		}
		if t.FirstURL != "" {
			out = append(out, t)
		}
	}
	return out
}

// topicTitle prefers the anchor text inside Result, then the text before " - "
func topicTitle(t ddgTopic) string {
	if m := anchorTag.FindStringSubmatch(t.Result); m != nil {
		if title := htmlutil.StripHTML(m[2]); title != "" {
			return title
		}
	}
	if i := strings.Index(t.Text, " - "); i > 0 {
		return t.Text[:i]
	}
	return truncate(t.Text, 80)
}

// BingNewsRSS parses the news RSS feed
func BingNewsRSS() domain.ParseStrategy {
	return domain.ParseStrategy{Name: "bing_news_rss", Attempt: rssAttempt}
}

func rssAttempt(in domain.ParseInput) []domain.SearchResult {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(in.Body))
	if err != nil {
		return nil
	}
	c := newCollector(in)
	c.allowSelf = true
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		c.add(htmlutil.StripHTML(item.Title), item.Link, htmlutil.StripHTML(item.Description))
	}
	return c.results
}

// siteSelectors describes a result page layout
type siteSelectors struct {
	name    string
	item    string
	link    string
	title   string
	snippet string

	// linkAttrs are tried in order; the first non-empty attribute wins
	linkAttrs []string

	// titleFromSnippet titles records with the start of the snippet when the page has no headline
	titleFromSnippet bool
}

func selectorStrategy(sel siteSelectors) domain.ParseStrategy {
	return domain.ParseStrategy{
		Name: sel.name,
		Attempt: func(in domain.ParseInput) []domain.SearchResult {
			return selectorAttempt(sel, in)
		},
	}
}

func selectorAttempt(sel siteSelectors, in domain.ParseInput) []domain.SearchResult {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(in.Body))
	if err != nil {
		return nil
	}
	attrs := sel.linkAttrs
	if len(attrs) == 0 {
		attrs = []string{"href"}
	}

	c := newCollector(in)
	c.allowSelf = true
	doc.Find(sel.item).Each(func(_ int, item *goquery.Selection) {
		link := item.Find(sel.link).First()
		if link.Length() == 0 {
			return
		}
		href := ""
		for _, attr := range attrs {
			if v, ok := link.Attr(attr); ok && strings.TrimSpace(v) != "" {
				href = v
				break
			}
		}

		snippet := ""
		if sel.snippet != "" {
			snippet = strings.TrimSpace(item.Find(sel.snippet).First().Text())
		}

		title := ""
		if sel.titleFromSnippet {
			title = truncate(domain.CollapseSpace(snippet), 60)
		}
		if title == "" && sel.title != "" {
			title = strings.TrimSpace(item.Find(sel.title).First().Text())
		}
		if title == "" {
			title = strings.TrimSpace(link.Text())
		}
		if title == "" {
			title, _ = link.Attr("title")
		}
		c.add(title, href, snippet)
	})
	return c.results
}

// DuckDuckGoHTML reads the html.duckduckgo.com result list
func DuckDuckGoHTML() domain.ParseStrategy {
	return selectorStrategy(siteSelectors{
		name:    "duckduckgo_html",
		item:    ".result, .web-result",
		link:    "a.result__a",
		snippet: ".result__snippet",
	})
}

// Google reads organic results
func Google() domain.ParseStrategy {
	return selectorStrategy(siteSelectors{
		name:    "google_html",
		item:    "div.g, div.MjjYud",
		link:    "a:has(h3)",
		title:   "h3",
		snippet: "div.VwiC3b, span.aCOpRe, div[data-sncf], div[style*='-webkit-line-clamp']",
	})
}

// Bing reads organic results
func Bing() domain.ParseStrategy {
	return selectorStrategy(siteSelectors{
		name:    "bing_html",
		item:    "li.b_algo",
		link:    "h2 a",
		snippet: ".b_caption p, p.b_lineclamp2, p.b_lineclamp3, p",
	})
}

// Baidu reads organic results; links stay on baidu's redirector, which cannot be decoded offline
func Baidu() domain.ParseStrategy {
	return selectorStrategy(siteSelectors{
		name:    "baidu_html",
		item:    "div.result, div.c-container",
		link:    "h3 a",
		snippet: ".c-abstract, span[class*='content-right'], .c-span-last",
	})
}

// Sogou reads organic results
func Sogou() domain.ParseStrategy {
	return selectorStrategy(siteSelectors{
		name:    "sogou_html",
		item:    "div.vrwrap, div.rb",
		link:    "h3 a",
		snippet: ".str-info, .str_info, .space-txt, .text-layout",
	})
}

// So360 reads organic results
func So360() domain.ParseStrategy {
	return selectorStrategy(siteSelectors{
		name:      "so360_html",
		item:      "li.res-list",
		link:      "h3 a",
		snippet:   "p.res-desc, .res-rich, .res-comm-con",
		linkAttrs: []string{"data-mdurl", "href"},
	})
}

// Zhihu reads search cards
func Zhihu() domain.ParseStrategy {
	return selectorStrategy(siteSelectors{
		name:    "zhihu_html",
		item:    ".SearchResult-Card, .List-item",
		link:    ".ContentItem-title a, h2 a",
		snippet: ".RichContent-inner, .SearchItem-meta",
	})
}

// Weibo reads post cards; posts have no headline so the text opens the title
func Weibo() domain.ParseStrategy {
	return selectorStrategy(siteSelectors{
		name:             "weibo_html",
		item:             "div.card-wrap",
		link:             ".from a",
		snippet:          "p.txt",
		titleFromSnippet: true,
	})
}

// Bilibili reads video cards
func Bilibili() domain.ParseStrategy {
	return selectorStrategy(siteSelectors{
		name:    "bilibili_html",
		item:    ".bili-video-card, .video-list-item",
		link:    "a[href*='/video/']",
		title:   ".bili-video-card__info--tit",
		snippet: ".bili-video-card__info--author, .bili-video-card__info--bottom",
	})
}
