package groundsearch

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groundsearch-api/core/interfaces"
)

// offlineHTTP fails every request so searches end in the placeholder bundle
type offlineHTTP struct{}

func (offlineHTTP) Get(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	return nil, errors.New("offline")
}

func (offlineHTTP) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (interfaces.Response, error) {
	return nil, errors.New("offline")
}

func newOfflineClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	base := []Option{
		WithHTTPClient(offlineHTTP{}),
		WithTimeouts(50*time.Millisecond, 0),
		WithFallback(50*time.Millisecond, 0),
		WithQuietMode(),
	}
	client, err := NewClient(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient()
	require.NoError(t, err)
	defer client.Close()

	assert.NotNil(t, client.config.Cache)
	assert.NotNil(t, client.config.HTTPClient)
	assert.NotNil(t, client.config.Logger)
	assert.NotNil(t, client.config.Settings)
	assert.Equal(t, 5, client.config.Search.PageFetchLimit)
}

func TestNewClient_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"empty proxy url", WithProxyURL("")},
		{"zero timeout", WithTimeouts(0, time.Second)},
		{"negative step", WithTimeouts(time.Second, -time.Second)},
		{"negative generations", WithFallback(time.Second, -1)},
		{"page limit too high", WithPageFetchLimit(11)},
		{"page limit zero", WithPageFetchLimit(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opt)
			assert.Nil(t, client)
			assert.True(t, IsConfigurationError(err))
		})
	}
}

func TestNewClient_ForeignOptionError(t *testing.T) {
	_, err := NewClient(func(*Config) error { return errors.New("boom") })
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestWithoutCache(t *testing.T) {
	client := newOfflineClient(t, WithoutCache())
	assert.Nil(t, client.config.Cache)
}

func TestWithSQLiteCache(t *testing.T) {
	path := t.TempDir() + "/search.db"
	client, err := NewClient(WithSQLiteCache(path), WithQuietMode())
	require.NoError(t, err)

	require.NoError(t, client.config.Cache.Set(context.Background(), "k", []byte("v"), time.Minute))
	got, err := client.config.Cache.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	assert.NoError(t, client.Close())
}

func TestSettingsFromOptions(t *testing.T) {
	client := newOfflineClient(t, WithProxyAPIKey("secret"), WithoutPageBodies())

	s := client.config.Settings.SearchSettings(context.Background())
	assert.True(t, s.Enabled)
	assert.Equal(t, "secret", s.ProxyAPIKey)
	assert.True(t, s.ProxiedSourcesEnabled)
	assert.False(t, s.PageBodiesEnabled)
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := newOfflineClient(t)

	bundle, err := client.Search(context.Background(), "   ")
	assert.Nil(t, bundle)
	assert.True(t, IsValidationError(err))
}

func TestSearch_OfflineReturnsPlaceholder(t *testing.T) {
	client := newOfflineClient(t, WithoutPageBodies())

	bundle, err := client.Search(context.Background(), "golang")
	require.NoError(t, err)
	assert.True(t, bundle.UsedFallback)
	require.NotEmpty(t, bundle.Results)
	for _, r := range bundle.Results {
		assert.Equal(t, "fallback", r.Source)
	}
}

func TestFetchPage_InvalidURL(t *testing.T) {
	client := newOfflineClient(t)

	page, err := client.FetchPage(context.Background(), "not a url")
	assert.Nil(t, page)
	assert.True(t, IsValidationError(err))
}

func TestFetchPage_OfflineReturnsPlaceholder(t *testing.T) {
	client := newOfflineClient(t)

	page, err := client.FetchPage(context.Background(), "https://example.com/a")
	require.NoError(t, err)
	assert.False(t, page.Retrieved)
	assert.Equal(t, "https://example.com/a", page.URL)
}

func TestExtractQuery(t *testing.T) {
	client := newOfflineClient(t)

	d := client.ExtractQuery("read https://go.dev/doc/ please")
	assert.True(t, d.ShouldSearch)
	assert.True(t, d.IsURL)
	assert.Equal(t, "https://go.dev/doc/", d.Query)

	assert.False(t, client.ExtractQuery("").ShouldSearch)
}

func TestSources(t *testing.T) {
	client := newOfflineClient(t, WithoutProxiedSources())

	sources, err := client.Sources(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, sources)

	for _, s := range sources {
		if s.AccessMode == "proxiedMarkup" {
			assert.False(t, s.Enabled, s.Name)
		}
	}
}

func TestClose(t *testing.T) {
	client, err := NewClient(WithQuietMode())
	require.NoError(t, err)

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())

	_, err = client.Search(context.Background(), "golang")
	assert.ErrorIs(t, err, ErrClientClosed)
	_, err = client.Sources(context.Background())
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("disk full")
	err := NewError(ErrorTypeConfiguration, "cannot open").WithCause(cause).WithContext("path", "/tmp/x")

	assert.Equal(t, "configuration: cannot open (caused by: disk full)", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "/tmp/x", err.Context["path"])
	assert.False(t, IsValidationError(err))
}
