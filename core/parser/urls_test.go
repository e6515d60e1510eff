package parser

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		base string
		want string
	}{
		{
			name: "duckduckgo redirect",
			raw:  "//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F&rut=abc",
			base: "https://html.duckduckgo.com/html/?q=go",
			want: "https://go.dev/doc/",
		},
		{
			name: "bing click redirect",
			raw:  "https://www.bing.com/ck/a?!&&p=abc&u=a1aHR0cHM6Ly9leGFtcGxlLmNvbS9wYWdl&ntb=1",
			want: "https://example.com/page",
		},
		{
			name: "bing news apiclick",
			raw:  "http://www.bing.com/news/apiclick.aspx?ref=FexRss&aid=&tid=1&url=https%3a%2f%2fnews.example.com%2fstory&c=1",
			want: "https://news.example.com/story",
		},
		{
			name: "google relative redirect",
			raw:  "/url?q=https://example.org/x&sa=U",
			base: "https://www.google.com/search?q=x",
			want: "https://example.org/x",
		},
		{
			name: "sogou relative redirect",
			raw:  "/link?url=https%3A%2F%2Fexample.net%2F",
			base: "https://www.sogou.com/web?query=x",
			want: "https://example.net/",
		},
		{
			name: "relative path",
			raw:  "/relative/path",
			base: "https://www.sogou.com/web?query=x",
			want: "https://www.sogou.com/relative/path",
		},
		{
			name: "www form with trailing period",
			raw:  "www.example.com/a.",
			want: "https://www.example.com/a",
		},
		{
			name: "bare domain",
			raw:  "example.org",
			want: "https://example.org",
		},
		{
			name: "balanced parenthesis kept",
			raw:  "https://en.wikipedia.org/wiki/Go_(programming_language)",
			want: "https://en.wikipedia.org/wiki/Go_(programming_language)",
		},
		{
			name: "unbalanced parenthesis trimmed",
			raw:  "https://example.com/page)",
			want: "https://example.com/page",
		},
		{name: "javascript", raw: "javascript:void(0)", want: ""},
		{name: "fragment", raw: "#top", want: ""},
		{name: "empty", raw: "  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeURL(tt.raw, tt.base); got != tt.want {
				t.Errorf("NormalizeURL(%q, %q) = %q, want %q", tt.raw, tt.base, got, tt.want)
			}
		})
	}
}

func TestIsSelfLink(t *testing.T) {
	tests := []struct {
		target  string
		request string
		want    bool
	}{
		{"https://www.bing.com/search?q=b", "https://cn.bing.com/search?q=a", true},
		{"https://www.bing.com/images/search?q=a", "https://cn.bing.com/search?q=a", true},
		{"https://www.bing.com/", "https://cn.bing.com/search?q=a", true},
		{"https://example.com/", "https://www.bing.com/search?q=a", false},
		{"https://a.example.com.cn/", "https://b.example.com.cn/", true},
		{"https://passport.weibo.com/login", "https://s.weibo.com/weibo?q=a", true},
		{"https://s.weibo.com/weibo?q=b", "https://s.weibo.com/weibo?q=a", true},
		{"https://www.bilibili.com/video/BV1xx411c7mD", "https://search.bilibili.com/all?keyword=go", false},
		{"https://www.zhihu.com/question/123", "https://www.zhihu.com/search?type=content&q=go", false},
		{"https://x.com/", "", false},
	}
	for _, tt := range tests {
		if got := IsSelfLink(tt.target, tt.request); got != tt.want {
			t.Errorf("IsSelfLink(%q, %q) = %v, want %v", tt.target, tt.request, got, tt.want)
		}
	}
}
