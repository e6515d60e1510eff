// ABOUTME: URL helpers for the parser cascade: absolutizing, redirect unwrapping, self-link filtering
// ABOUTME: Tracking redirectors are decoded from their query parameter, never followed

package parser

import (
	"encoding/base64"
	"net/url"
	"strings"
	"unicode/utf8"

	"groundsearch-api/core/domain"
)

// trailing punctuation that regexes tend to swallow
const urlTrailing = ".,;:!?)]}>'\"。，；：！？）】》"

// NormalizeURL turns a raw href or token into an absolute, unwrapped URL.
// It returns "" when the result is not usable.
func NormalizeURL(raw, base string) string {
	raw = trimTrailing(strings.TrimSpace(raw))
	if raw == "" || strings.HasPrefix(raw, "#") {
		return ""
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "data:") {
		return ""
	}

	abs := Absolutize(raw, base)
	abs = UnwrapRedirect(abs)
	if !domain.IsUsableURL(abs) {
		return ""
	}
	return abs
}

// trimTrailing drops sentence punctuation glued to a URL but keeps balanced closing brackets
func trimTrailing(s string) string {
	for s != "" {
		r, size := utf8.DecodeLastRuneInString(s)
		if !strings.ContainsRune(urlTrailing, r) {
			return s
		}
		if r == ')' && strings.Count(s, "(") >= strings.Count(s, ")") {
			return s
		}
		if r == ']' && strings.Count(s, "[") >= strings.Count(s, "]") {
			return s
		}
		s = s[:len(s)-size]
	}
	return s
}

// Absolutize resolves protocol-relative, www. and bare-domain forms and relative paths against base
func Absolutize(raw, base string) string {
	switch {
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(strings.ToLower(raw), "http://"), strings.HasPrefix(strings.ToLower(raw), "https://"):
		return raw
	case strings.HasPrefix(strings.ToLower(raw), "www."):
		return "https://" + raw
	}

	if !strings.HasPrefix(raw, "/") && looksLikeDomain(raw) {
		return "https://" + raw
	}

	if base == "" {
		return raw
	}
	b, err := url.Parse(base)
	if err != nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return b.ResolveReference(ref).String()
}

// UnwrapRedirect decodes the target of known tracking redirectors.
// Unknown URLs are returned unchanged.
func UnwrapRedirect(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	host := strings.ToLower(u.Hostname())
	q := u.Query()

	switch {
	case strings.HasSuffix(host, "duckduckgo.com") && strings.HasPrefix(u.Path, "/l/"):
		if target := q.Get("uddg"); target != "" {
			return target
		}
	case strings.HasSuffix(host, "bing.com") && strings.HasPrefix(u.Path, "/ck/"):
		if target := decodeBingTarget(q.Get("u")); target != "" {
			return target
		}
	case strings.HasSuffix(host, "bing.com") && strings.Contains(u.Path, "apiclick"):
		if target := q.Get("url"); target != "" {
			return target
		}
	case strings.Contains(host, "google.") && u.Path == "/url":
		if target := q.Get("q"); strings.HasPrefix(target, "http") {
			return target
		}
		if target := q.Get("url"); strings.HasPrefix(target, "http") {
			return target
		}
	case strings.HasSuffix(host, "sogou.com") && u.Path == "/link":
		if target := q.Get("url"); strings.HasPrefix(target, "http") {
			return target
		}
	}
	return raw
}

// decodeBingTarget decodes the "a1"-prefixed base64url payload of bing click redirects
func decodeBingTarget(v string) string {
	if len(v) < 3 || !strings.HasPrefix(v, "a1") {
		return ""
	}
	payload := v[2:]
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(payload, "="))
	if err != nil {
		return ""
	}
	target := string(decoded)
	if !strings.HasPrefix(target, "http") {
		return ""
	}
	return target
}

// IsSelfLink reports whether target is part of the serving site's own chrome:
// its home page, the search page itself, or account and vertical-search pages.
// Same-site content pages (videos, questions, posts) are not self links.
func IsSelfLink(target, requestURL string) bool {
	if requestURL == "" {
		return false
	}
	t, err := url.Parse(target)
	if err != nil {
		return false
	}
	r, err := url.Parse(requestURL)
	if err != nil {
		return false
	}
	if registrableHost(t.Hostname()) != registrableHost(r.Hostname()) {
		return false
	}
	return isChromePath(t.Path, r.Path)
}

var chromeSegments = map[string]bool{
	"search": true, "s": true, "web": true, "all": true,
	"login": true, "signin": true, "signup": true, "register": true, "passport": true,
	"account": true, "settings": true, "preferences": true, "help": true, "about": true,
	"images": true, "news": true, "maps": true, "shopping": true,
}

func isChromePath(path, requestPath string) bool {
	path = strings.Trim(path, "/")
	if path == "" || path == strings.Trim(requestPath, "/") {
		return true
	}
	first := strings.ToLower(strings.SplitN(path, "/", 2)[0])
	return chromeSegments[first]
}

// registrableHost drops everything but the last two labels ("www.bing.com" -> "bing.com")
func registrableHost(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	parts := strings.Split(host, ".")
	if len(parts) <= 2 {
		return host
	}
	last := parts[len(parts)-2:]
	// second-level public suffixes such as com.cn keep a third label
	if len(parts) >= 3 && (last[0] == "com" || last[0] == "net" || last[0] == "org" || last[0] == "co") && len(last[1]) == 2 {
		return strings.Join(parts[len(parts)-3:], ".")
	}
	return strings.Join(last, ".")
}

var bareTLDs = []string{".com", ".org", ".net", ".cn", ".io", ".gov", ".edu", ".info", ".co"}

func looksLikeDomain(s string) bool {
	host := s
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	host = strings.ToLower(host)
	if strings.ContainsAny(host, " @:") {
		return false
	}
	for _, tld := range bareTLDs {
		if strings.HasSuffix(host, tld) && len(host) > len(tld) {
			return true
		}
	}
	return false
}
