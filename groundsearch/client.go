// ABOUTME: Main client for the groundsearch library
// ABOUTME: Embeds the multi-source search engine and page reader without the HTTP server

package groundsearch

import (
	"context"
	"errors"
	"strings"
	"sync"

	"groundsearch-api/core/domain"
	"groundsearch-api/core/interfaces"
	"groundsearch-api/core/query"
	"groundsearch-api/core/reader"
	"groundsearch-api/core/search"
	"groundsearch-api/core/sources"
)

// Client is the main entry point for the library
type Client struct {
	service interfaces.SearchService
	config  Config

	mu     sync.RWMutex
	closed bool
}

// NewClient creates a new client with the given options
func NewClient(opts ...Option) (*Client, error) {
	config := defaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			var libErr *Error
			if errors.As(err, &libErr) {
				return nil, err
			}
			return nil, NewError(ErrorTypeConfiguration, "failed to apply option").WithCause(err)
		}
	}
	config.withDefaults()

	deps := interfaces.Dependencies{
		Cache:      config.Cache,
		HTTPClient: config.HTTPClient,
		Logger:     config.Logger,
		Settings:   config.Settings,
	}
	pageReader := reader.NewService(config.HTTPClient, config.Cache, config.Logger, config.Search.ProxyURL).
		WithTimeout(config.Search.PageTimeout)

	return &Client{
		service: search.NewSearchService(deps, sources.New(), pageReader, config.Search),
		config:  config,
	}, nil
}

func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Search queries every enabled source and returns the ranked bundle.
// Source failures are reported inside the bundle, never as an error.
func (c *Client) Search(ctx context.Context, q string) (*Bundle, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(q) == "" {
		return nil, NewError(ErrorTypeValidation, "query cannot be empty")
	}
	bundle := c.service.Search(ctx, q)
	return &bundle, nil
}

// FetchPage reads one page through the reading proxy
func (c *Client) FetchPage(ctx context.Context, url string) (*Page, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if !domain.IsUsableURL(url) {
		return nil, NewError(ErrorTypeValidation, "invalid URL").WithContext("url", url)
	}
	page := c.service.FetchPage(ctx, url)
	return &page, nil
}

// Ground derives a query from a user message and builds the grounding context
func (c *Client) Ground(ctx context.Context, message string, condensed bool) (*Grounding, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	g := c.service.Ground(ctx, message, condensed)
	return &g, nil
}

// ExtractQuery decides whether message warrants a search without running one
func (c *Client) ExtractQuery(message string) QueryDecision {
	res, ok := query.Extract(message)
	if !ok {
		return QueryDecision{}
	}
	return QueryDecision{ShouldSearch: true, Query: res.Query, IsURL: res.IsURL}
}

// Sources lists the registered sources and whether each is enabled now
func (c *Client) Sources(ctx context.Context) ([]SourceInfo, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	return c.service.Sources(ctx), nil
}

// Close releases resources opened by options. Further calls fail with ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	for _, closeFn := range c.config.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
