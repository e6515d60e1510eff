// ABOUTME: Source registry is the fixed catalog of search backends and their parse cascades
// ABOUTME: Proxied sources are only active when a reading proxy credential is configured

package sources

import (
	"fmt"
	"net/url"

	"groundsearch-api/core/domain"
	"groundsearch-api/core/parser"
)

// Source names, also used as SearchResult.Source
const (
	DuckDuckGoInstant = "duckduckgo_instant"
	DuckDuckGo        = "duckduckgo"
	BingNews          = "bing_news"
	Google            = "google"
	Bing              = "bing"
	Baidu             = "baidu"
	Sogou             = "sogou"
	So360             = "so360"
	Zhihu             = "zhihu"
	Weibo             = "weibo"
	Bilibili          = "bilibili"
)

// DefaultRank applies to sources missing from the priority table
const DefaultRank = 10

// priority is the tunable source weight table; lower ranks score higher
var priority = map[string]int{
	DuckDuckGoInstant: 1,
	Google:            2,
	Bing:              3,
	DuckDuckGo:        4,
	BingNews:          5,
	Baidu:             6,
	Sogou:             7,
	So360:             8,
	Zhihu:             9,
	Weibo:             10,
	Bilibili:          10,
}

// Rank returns the priority rank of a source
func Rank(name string) int {
	if r, ok := priority[name]; ok {
		return r
	}
	return DefaultRank
}

// Registry holds the immutable source catalog
type Registry struct {
	alwaysOn []domain.SourceSpec
	proxied  []domain.SourceSpec
}

// New builds the default catalog
func New() *Registry {
	return &Registry{
		alwaysOn: []domain.SourceSpec{
			{
				Name:       DuckDuckGoInstant,
				Label:      "DuckDuckGo Instant Answer",
				AccessMode: domain.StructuredAPI,
				Endpoint:   template("https://api.duckduckgo.com/?q=%s&format=json&no_html=1&skip_disambig=1"),
				Strategies: []domain.ParseStrategy{parser.DuckDuckGoInstant()},
			},
			{
				Name:       DuckDuckGo,
				Label:      "DuckDuckGo",
				AccessMode: domain.DirectMarkup,
				Endpoint:   template("https://html.duckduckgo.com/html/?q=%s"),
				Strategies: parser.Chain(parser.DuckDuckGoHTML()),
			},
			{
				Name:       BingNews,
				Label:      "Bing News",
				AccessMode: domain.DirectMarkup,
				Endpoint:   template("https://www.bing.com/news/search?q=%s&format=rss"),
				Strategies: parser.Chain(parser.BingNewsRSS()),
			},
		},
		proxied: []domain.SourceSpec{
			proxiedSpec(Google, "Google", "https://www.google.com/search?q=%s", parser.Google()),
			proxiedSpec(Bing, "Bing", "https://www.bing.com/search?q=%s", parser.Bing()),
			proxiedSpec(Baidu, "Baidu", "https://www.baidu.com/s?wd=%s", parser.Baidu()),
			proxiedSpec(Sogou, "Sogou", "https://www.sogou.com/web?query=%s", parser.Sogou()),
			proxiedSpec(So360, "360 Search", "https://www.so.com/s?q=%s", parser.So360()),
			proxiedSpec(Zhihu, "Zhihu", "https://www.zhihu.com/search?type=content&q=%s", parser.Zhihu()),
			proxiedSpec(Weibo, "Weibo", "https://s.weibo.com/weibo?q=%s", parser.Weibo()),
			proxiedSpec(Bilibili, "Bilibili", "https://search.bilibili.com/all?keyword=%s", parser.Bilibili()),
		},
	}
}

// NewWith builds a registry from explicit specs, mainly for tests and embedders
func NewWith(alwaysOn, proxied []domain.SourceSpec) *Registry {
	return &Registry{alwaysOn: alwaysOn, proxied: proxied}
}

// Active returns the sources enabled for settings: always-on first, then proxied ones when allowed
func (r *Registry) Active(settings domain.SearchSettings) []domain.SourceSpec {
	out := make([]domain.SourceSpec, 0, len(r.alwaysOn)+len(r.proxied))
	out = append(out, r.alwaysOn...)
	if settings.ProxyAvailable() {
		out = append(out, r.proxied...)
	}
	return out
}

// All returns every registered source
func (r *Registry) All() []domain.SourceSpec {
	out := make([]domain.SourceSpec, 0, len(r.alwaysOn)+len(r.proxied))
	out = append(out, r.alwaysOn...)
	return append(out, r.proxied...)
}

// Proxied returns the proxied sources in fallback order
func (r *Registry) Proxied() []domain.SourceSpec {
	return append([]domain.SourceSpec(nil), r.proxied...)
}

// Lookup finds a source by name
func (r *Registry) Lookup(name string) (domain.SourceSpec, bool) {
	for _, spec := range r.All() {
		if spec.Name == name {
			return spec, true
		}
	}
	return domain.SourceSpec{}, false
}

// FirstOf returns the first registered source with the given access mode
func (r *Registry) FirstOf(mode domain.AccessMode) (domain.SourceSpec, bool) {
	for _, spec := range r.alwaysOn {
		if spec.AccessMode == mode {
			return spec, true
		}
	}
	return domain.SourceSpec{}, false
}

func proxiedSpec(name, label, pattern string, site domain.ParseStrategy) domain.SourceSpec {
	return domain.SourceSpec{
		Name:       name,
		Label:      label,
		AccessMode: domain.ProxiedMarkup,
		Endpoint:   template(pattern),
		Strategies: parser.Chain(site),
	}
}

func template(pattern string) func(string) string {
	return func(q string) string {
		return fmt.Sprintf(pattern, url.QueryEscape(q))
	}
}
