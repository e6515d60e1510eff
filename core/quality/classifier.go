// ABOUTME: Content quality classifier flags login, error and navigation-only pages
// ABOUTME: A low-quality verdict is an expected outcome for some sources, not a failure

package quality

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	loginThreshold      = 3
	navigationThreshold = 5
	navigationMaxLength = 2000
	linklessMinLength   = 1000
)

var (
	loginTerms = []string{
		"登录", "登陆", "注册", "密码", "账号", "扫码登录", "验证码",
		"login", "log in", "sign in", "sign up", "signup", "register", "password", "forgot your",
	}

	errorTerms = []string{
		"no results found", "did not match any", "no results for", "0 results",
		"page not found", "404 not found", "error 404", "403 forbidden", "access denied",
		"internal server error", "bad gateway", "service unavailable", "too many requests",
		"unusual traffic", "are you a robot", "enable javascript",
		"没有找到", "未找到相关", "找不到", "页面不存在", "出错了", "服务器错误", "访问被拒绝", "请求过于频繁", "安全验证",
	}

	navigationTerms = []string{
		"首页", "关于我们", "联系我们", "隐私政策", "用户协议", "版权所有", "网站地图", "帮助中心",
		"home", "about us", "contact us", "privacy policy", "terms of service", "terms of use",
		"copyright", "all rights reserved", "sitemap", "cookie",
	}

	urlToken = regexp.MustCompile(`(?i)https?://\S+|www\.\S+|\b[a-z0-9-]+\.(?:com|org|net|cn|io|gov|edu|info|co)\b`)
)

// Verdict is the classifier output
type Verdict struct {
	// LowQuality is true when any heuristic fired
	LowQuality bool

	// Reason names the heuristic that fired
	Reason string
}

// Classify runs every heuristic over text and returns the first that fires
func Classify(text string) Verdict {
	lower := strings.ToLower(text)
	length := utf8.RuneCountInString(text)

	if countTerms(lower, loginTerms) >= loginThreshold {
		return Verdict{LowQuality: true, Reason: "login or registration page"}
	}
	if countTerms(lower, errorTerms) > 0 {
		return Verdict{LowQuality: true, Reason: "error or empty results page"}
	}
	if length < navigationMaxLength && countTerms(lower, navigationTerms) >= navigationThreshold {
		return Verdict{LowQuality: true, Reason: "navigation or footer only"}
	}
	if length > linklessMinLength && !urlToken.MatchString(text) {
		return Verdict{LowQuality: true, Reason: "long body without links"}
	}
	return Verdict{}
}

// IsLowQuality reports whether text should be treated as a low-quality page
func IsLowQuality(text string) bool {
	return Classify(text).LowQuality
}

// countTerms counts every occurrence of every term
func countTerms(lower string, terms []string) int {
	total := 0
	for _, term := range terms {
		total += strings.Count(lower, term)
	}
	return total
}
