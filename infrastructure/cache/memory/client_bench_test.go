package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"groundsearch-api/core/domain"
)

// bundlePayload is a ranked bundle of ten results, the shape the search service caches
func bundlePayload(b *testing.B, q string) []byte {
	b.Helper()
	bundle := domain.RankedBundle{Query: q}
	for i := 0; i < 10; i++ {
		bundle.Results = append(bundle.Results, domain.SearchResult{
			Title:   fmt.Sprintf("%s result %d", q, i),
			URL:     fmt.Sprintf("https://example.com/%d/%s", i, strings.ReplaceAll(q, " ", "-")),
			Snippet: strings.Repeat("snippet text ", 20),
			Source:  "duckduckgo",
		})
	}
	data, err := json.Marshal(bundle)
	if err != nil {
		b.Fatal(err)
	}
	return data
}

// pagePayload is a page body at the 5000 character cap
func pagePayload(b *testing.B, url string) []byte {
	b.Helper()
	data, err := json.Marshal(domain.PageBody{
		Title:     "Page",
		URL:       url,
		Source:    "google",
		Content:   strings.Repeat("x", 5000),
		Retrieved: true,
	})
	if err != nil {
		b.Fatal(err)
	}
	return data
}

func BenchmarkMemoryCache_GetBundle(b *testing.B) {
	cache := NewMemoryCache()
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		q := fmt.Sprintf("query %d", i)
		_ = cache.Set(ctx, "search:web:direct:pages:"+q, bundlePayload(b, q), 10*time.Minute)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cache.Get(ctx, fmt.Sprintf("search:web:direct:pages:query %d", i%500))
	}
}

func BenchmarkMemoryCache_SetPage(b *testing.B) {
	cache := NewMemoryCache()
	ctx := context.Background()
	payload := pagePayload(b, "https://example.com/article")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cache.Set(ctx, fmt.Sprintf("reader:https://example.com/%d", i), payload, time.Hour)
	}
}

func BenchmarkMemoryCache_MissingBundle(b *testing.B) {
	cache := NewMemoryCache()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cache.Get(ctx, fmt.Sprintf("search:web:proxied:nopages:miss %d", i))
	}
}

// Page fetches for the top five results hit the cache concurrently
func BenchmarkMemoryCache_ConcurrentPages(b *testing.B) {
	cache := NewMemoryCache()
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		url := fmt.Sprintf("https://example.com/%d", i)
		_ = cache.Set(ctx, "reader:"+url, pagePayload(b, url), time.Hour)
	}

	var n int64
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			i := atomic.AddInt64(&n, 1)
			key := fmt.Sprintf("reader:https://example.com/%d", i%100)
			if i%5 == 0 {
				_ = cache.Set(ctx, key, []byte(`{"retrieved":false}`), time.Hour)
				continue
			}
			_, _ = cache.Get(ctx, key)
		}
	})
}
