package search

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"groundsearch-api/core/domain"
	"groundsearch-api/core/interfaces"
)

// handler answers one routed request; n is how many times the route was hit before
type handler func(ctx context.Context, n int) (interfaces.Response, error)

type recordedRequest struct {
	url     string
	headers map[string]string
}

// fakeWeb routes GET requests by URL substring. Unrouted URLs fail.
type fakeWeb struct {
	mu       sync.Mutex
	routes   map[string]handler
	calls    map[string]int
	requests []recordedRequest
}

func newFakeWeb(routes map[string]handler) *fakeWeb {
	return &fakeWeb{routes: routes, calls: map[string]int{}}
}

func (f *fakeWeb) Get(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{url: url, headers: headers})
	var h handler
	var n int
	for key, candidate := range f.routes {
		if strings.Contains(url, key) {
			h = candidate
			n = f.calls[key]
			f.calls[key]++
			break
		}
	}
	f.mu.Unlock()

	if h == nil {
		return nil, errors.New("connection refused")
	}
	return h(ctx, n)
}

func (f *fakeWeb) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (interfaces.Response, error) {
	return nil, errors.New("post not routed")
}

func (f *fakeWeb) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeWeb) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeWeb) requestFor(substr string) (recordedRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if strings.Contains(r.url, substr) {
			return r, true
		}
	}
	return recordedRequest{}, false
}

func respond(status int, body string) handler {
	return func(context.Context, int) (interfaces.Response, error) {
		return &mockResponse{statusCode: status, body: body}, nil
	}
}

func fail(msg string) handler {
	return func(context.Context, int) (interfaces.Response, error) {
		return nil, errors.New(msg)
	}
}

// hang blocks until the request deadline passes
func hang() handler {
	return func(ctx context.Context, _ int) (interfaces.Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// memCache is a map-backed Cache for tests
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (m *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("cache miss")
}

func (m *memCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.sets++
	return nil
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// mockPageReader is a mock implementation of the PageReader interface
type mockPageReader struct {
	fetchPageFunc  func(ctx context.Context, result domain.SearchResult, apiKey string) domain.PageBody
	fetchPagesFunc func(ctx context.Context, results []domain.SearchResult, limit int, apiKey string) []domain.PageBody
}

func (m *mockPageReader) FetchPage(ctx context.Context, result domain.SearchResult, apiKey string) domain.PageBody {
	if m.fetchPageFunc != nil {
		return m.fetchPageFunc(ctx, result, apiKey)
	}
	return domain.PageBody{URL: result.URL}
}

func (m *mockPageReader) FetchPages(ctx context.Context, results []domain.SearchResult, limit int, apiKey string) []domain.PageBody {
	if m.fetchPagesFunc != nil {
		return m.fetchPagesFunc(ctx, results, limit, apiKey)
	}
	return nil
}

func settingsOf(s domain.SearchSettings) interfaces.SettingsProvider {
	return interfaces.SettingsFunc(func(context.Context) domain.SearchSettings { return s })
}
