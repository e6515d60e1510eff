// ABOUTME: Page body fetcher retrieves rendered page text through the page-reading proxy
// ABOUTME: Tries a structured POST then a prefixed GET; failures become placeholder bodies

package reader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"groundsearch-api/core/domain"
	apperrors "groundsearch-api/core/errors"
	"groundsearch-api/core/interfaces"
	htmlutil "groundsearch-api/pkg/utils/html"

	md "github.com/JohannesKaufmann/html-to-markdown"
	readability "github.com/go-shiori/go-readability"
)

const (
	// MaxBodyLength caps retrieved page text
	MaxBodyLength = 5000

	// CondensedBodyLength caps page text destined for condensed context
	CondensedBodyLength = 2000

	// DefaultProxyURL is the public page-reading proxy
	DefaultProxyURL = "https://r.jina.ai"

	// DefaultPageTimeout bounds one page fetch, both proxy calls included
	DefaultPageTimeout = 20 * time.Second

	cacheTTL        = 1 * time.Hour
	maxResponseSize = 4 << 20
)

var titleLine = regexp.MustCompile(`(?m)^Title:\s*(.+)$`)

// Service fetches page bodies
type Service struct {
	httpClient interfaces.HTTPClient
	cache      interfaces.Cache
	logger     interfaces.Logger
	proxyURL   string
	timeout    time.Duration
}

// NewService creates a page body fetcher. An empty proxyURL uses DefaultProxyURL.
func NewService(httpClient interfaces.HTTPClient, cache interfaces.Cache, logger interfaces.Logger, proxyURL string) *Service {
	if proxyURL == "" {
		proxyURL = DefaultProxyURL
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Service{
		httpClient: httpClient,
		cache:      cache,
		logger:     logger,
		proxyURL:   strings.TrimRight(proxyURL, "/"),
		timeout:    DefaultPageTimeout,
	}
}

// WithTimeout sets the per-page deadline; non-positive values keep the current one
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// FetchPages retrieves up to limit pages concurrently. Output order follows results;
// one failed page never cancels the others.
func (s *Service) FetchPages(ctx context.Context, results []domain.SearchResult, limit int, apiKey string) []domain.PageBody {
	if limit <= 0 || len(results) == 0 {
		return nil
	}
	if len(results) > limit {
		results = results[:limit]
	}

	pages := make([]domain.PageBody, len(results))
	var g errgroup.Group
	for i, result := range results {
		i, result := i, result
		g.Go(func() error {
			pages[i] = s.FetchPage(ctx, result, apiKey)
			return nil
		})
	}
	_ = g.Wait()
	return pages
}

// FetchPage retrieves one page, from cache when possible
func (s *Service) FetchPage(ctx context.Context, result domain.SearchResult, apiKey string) domain.PageBody {
	cacheKey := fmt.Sprintf("reader:%s", result.URL)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached domain.PageBody
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
		}
	}

	pageCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	page, err := s.fetchStructured(pageCtx, result, apiKey)
	if err != nil {
		s.logger.Debug("Structured page fetch failed, trying direct call", map[string]interface{}{
			"url":   result.URL,
			"error": err.Error(),
		})
		page, err = s.fetchDirect(pageCtx, result, apiKey)
	}
	if err != nil {
		s.logger.Warn("Page could not be retrieved", map[string]interface{}{
			"url":   result.URL,
			"error": err.Error(),
		})
		return Placeholder(result)
	}

	if s.cache != nil {
		if data, err := json.Marshal(page); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, cacheTTL)
		}
	}
	return page
}

// Placeholder is the body used when a page could not be retrieved
func Placeholder(result domain.SearchResult) domain.PageBody {
	title := result.Title
	if title == "" {
		title = htmlutil.DefaultTitle
	}
	return domain.PageBody{
		Title:   title,
		URL:     result.URL,
		Source:  result.Source,
		Content: fmt.Sprintf("The content of %s could not be retrieved.", result.URL),
	}
}

// structuredResponse is the JSON envelope of the proxy's POST convention
type structuredResponse struct {
	Code int `json:"code"`
	Data struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"data"`
}

func (s *Service) fetchStructured(ctx context.Context, result domain.SearchResult, apiKey string) (domain.PageBody, error) {
	payload, err := json.Marshal(map[string]string{"url": result.URL})
	if err != nil {
		return domain.PageBody{}, err
	}
	headers := s.headers(apiKey)
	headers["Accept"] = "application/json"
	headers["Content-Type"] = "application/json"

	body, err := s.call(ctx, func() (interfaces.Response, error) {
		return s.httpClient.Post(ctx, s.proxyURL+"/", bytes.NewReader(payload), headers)
	})
	if err != nil {
		return domain.PageBody{}, err
	}

	var envelope structuredResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.PageBody{}, &apperrors.ParseError{Source: "reader", Reason: "invalid proxy envelope", Err: err}
	}
	if strings.TrimSpace(envelope.Data.Content) == "" {
		return domain.PageBody{}, &apperrors.ParseError{Source: "reader", Reason: "empty content"}
	}

	return s.build(result, envelope.Data.Title, envelope.Data.Content), nil
}

func (s *Service) fetchDirect(ctx context.Context, result domain.SearchResult, apiKey string) (domain.PageBody, error) {
	body, err := s.call(ctx, func() (interfaces.Response, error) {
		return s.httpClient.Get(ctx, s.proxyURL+"/"+result.URL, s.headers(apiKey))
	})
	if err != nil {
		return domain.PageBody{}, err
	}

	text := string(body)
	if strings.TrimSpace(text) == "" {
		return domain.PageBody{}, &apperrors.ParseError{Source: "reader", Reason: "empty content"}
	}

	title := ""
	if m := titleLine.FindStringSubmatch(text); m != nil {
		title = strings.TrimSpace(m[1])
	}
	return s.build(result, title, text), nil
}

func (s *Service) call(ctx context.Context, do func() (interfaces.Response, error)) ([]byte, error) {
	if s.httpClient == nil {
		return nil, &apperrors.TransportError{Source: "reader", Err: fmt.Errorf("http client not configured")}
	}
	resp, err := do()
	if err != nil {
		return nil, &apperrors.TransportError{Source: "reader", URL: s.proxyURL, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &apperrors.ExternalAPIError{StatusCode: resp.StatusCode(), Message: "page-reading proxy rejected the request", API: "reader"}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body(), maxResponseSize))
	if err != nil {
		return nil, &apperrors.TransportError{Source: "reader", URL: s.proxyURL, Err: err}
	}
	return body, nil
}

func (s *Service) headers(apiKey string) map[string]string {
	headers := map[string]string{}
	if apiKey != "" {
		headers["Authorization"] = "Bearer " + apiKey
	}
	return headers
}

// build turns raw proxy content into a PageBody, converting HTML to markdown when needed
func (s *Service) build(result domain.SearchResult, title, content string) domain.PageBody {
	if htmlutil.LooksLikeHTML(content) {
		if title == "" {
			if t := htmlutil.ExtractTitle(content); t != htmlutil.DefaultTitle {
				title = t
			}
		}
		content = s.htmlToMarkdown(result.URL, content)
	}
	if title == "" {
		title = result.Title
	}
	if title == "" {
		title = htmlutil.DefaultTitle
	}

	return domain.PageBody{
		Title:     title,
		URL:       result.URL,
		Source:    result.Source,
		Content:   Truncate(cleanMarkdown(content), MaxBodyLength),
		Retrieved: true,
	}
}

func (s *Service) htmlToMarkdown(pageURL, html string) string {
	parsed, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(html), parsed)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		s.logger.Debug("Readability extraction failed, stripping tags", map[string]interface{}{
			"url": pageURL,
		})
		return htmlutil.ToText(html)
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(article.Content)
	if err != nil {
		s.logger.Debug("Failed to convert HTML to markdown", map[string]interface{}{
			"url":   pageURL,
			"error": err.Error(),
		})
		return article.TextContent
	}
	return markdown
}

// Truncate cuts s to at most n characters
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

var (
	manyNewlines  = regexp.MustCompile(`\n{3,}`)
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	leadingSpace  = regexp.MustCompile(`\n[ \t]+`)
)

// cleanMarkdown removes excessive newlines and stray whitespace
func cleanMarkdown(markdown string) string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	markdown = strings.ReplaceAll(markdown, "\r", "\n")
	markdown = trailingSpace.ReplaceAllString(markdown, "\n")
	markdown = leadingSpace.ReplaceAllString(markdown, "\n")
	markdown = manyNewlines.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown)
}
