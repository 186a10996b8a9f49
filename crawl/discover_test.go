package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typedex/typedex"
	"github.com/typedex/typedex/crawl"
	"github.com/typedex/typedex/mock"
)

func TestDiscoverer_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("walks links within host and path scope", func(t *testing.T) {
		t.Parallel()

		pages := map[string][]typedex.DiscoveredLink{
			"https://example.com/docs": {
				{URL: "https://example.com/docs/atom", Priority: typedex.PriorityContent},
				{URL: "https://example.com/blog/post", Priority: typedex.PriorityContent},  // outside path prefix
				{URL: "https://other.example.org/docs", Priority: typedex.PriorityContent}, // outside host
			},
			"https://example.com/docs/atom": {
				{URL: "https://example.com/docs", Priority: typedex.PriorityContent}, // already seen
			},
		}

		d := &crawl.Discoverer{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return url, nil
				},
			},
			Selector: &mock.LinkSelector{
				ExtractLinksFn: func(html, baseURL string) ([]typedex.DiscoveredLink, error) {
					return pages[baseURL], nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		urls, err := d.DiscoverURLs(context.Background(), "https://example.com/docs", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/docs", "https://example.com/docs/atom"}, urls)
	})

	t.Run("respects MaxURLs cap", func(t *testing.T) {
		t.Parallel()

		n := 0
		d := &crawl.Discoverer{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return url, nil
				},
			},
			Selector: &mock.LinkSelector{
				ExtractLinksFn: func(html, baseURL string) ([]typedex.DiscoveredLink, error) {
					n++
					return []typedex.DiscoveredLink{
						{URL: baseURL + "/" + string(rune('a'+n)), Priority: typedex.PriorityContent},
					}, nil
				},
			},
			RetryDelays: []time.Duration{},
			MaxURLs:     3,
		}

		urls, err := d.DiscoverURLs(context.Background(), "https://example.com/docs", nil)
		require.NoError(t, err)
		assert.Len(t, urls, 3)
	})

	t.Run("unreachable pages are skipped, not fatal", func(t *testing.T) {
		t.Parallel()

		d := &crawl.Discoverer{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					if url == "https://example.com/docs/broken" {
						return "", errors.New("connection refused")
					}
					return url, nil
				},
			},
			Selector: &mock.LinkSelector{
				ExtractLinksFn: func(html, baseURL string) ([]typedex.DiscoveredLink, error) {
					if baseURL == "https://example.com/docs" {
						return []typedex.DiscoveredLink{
							{URL: "https://example.com/docs/broken", Priority: typedex.PriorityNavigation},
							{URL: "https://example.com/docs/ok", Priority: typedex.PriorityContent},
						}, nil
					}
					return nil, nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		urls, err := d.DiscoverURLs(context.Background(), "https://example.com/docs", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/docs", "https://example.com/docs/ok"}, urls)
	})

	t.Run("rejects invalid source URL", func(t *testing.T) {
		t.Parallel()

		d := &crawl.Discoverer{
			Fetcher:     &mock.Fetcher{},
			Selector:    &mock.LinkSelector{},
			RetryDelays: []time.Duration{},
		}

		_, err := d.DiscoverURLs(context.Background(), "://bad", nil)
		assert.Equal(t, typedex.EINVALID, typedex.ErrorCode(err))
	})
}
