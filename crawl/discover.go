package crawl

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/typedex/typedex"
)

// maxDiscoveredURLs limits recursive discovery to prevent runaway crawls.
const maxDiscoveredURLs = 1000

// Discoverer recursively discovers documentation URLs by following links,
// used when sitemap discovery yields nothing. Discovery stays within the
// source URL's host and path prefix.
type Discoverer struct {
	Fetcher     typedex.Fetcher
	Selector    typedex.LinkSelector
	Limiter     typedex.DomainLimiter
	RetryDelays []time.Duration

	// MaxURLs caps processed URLs. Defaults to maxDiscoveredURLs.
	MaxURLs int
}

// DiscoverURLs walks links starting from sourceURL and returns the URLs
// found, in discovery order. URLs are deduplicated through a Bloom-filter
// frontier and prioritized by where on the page the link was found.
func (d *Discoverer) DiscoverURLs(ctx context.Context, sourceURL string, urlFilter *typedex.URLFilter) ([]string, error) {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return nil, typedex.Errorf(typedex.EINVALID, "invalid source URL: %v", err)
	}
	pathPrefix := parsed.Path

	maxURLs := d.MaxURLs
	if maxURLs <= 0 {
		maxURLs = maxDiscoveredURLs
	}
	delays := d.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(typedex.DiscoveredLink{
		URL:      sourceURL,
		Priority: typedex.PriorityNavigation,
	})

	var urls []string
	for len(urls) < maxURLs {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		if ctx.Err() != nil {
			break
		}

		linkURL, err := url.Parse(link.URL)
		if err != nil {
			continue
		}
		if d.Limiter != nil {
			if err := d.Limiter.Wait(ctx, linkURL.Host); err != nil {
				break // context canceled
			}
		}

		html, err := FetchWithRetryDelays(ctx, link.URL, d.Fetcher.Fetch, nil, delays)
		if err != nil {
			continue
		}
		urls = append(urls, link.URL)

		links, err := d.Selector.ExtractLinks(html, link.URL)
		if err != nil {
			continue
		}
		for _, discovered := range links {
			discoveredURL, err := url.Parse(discovered.URL)
			if err != nil {
				continue
			}
			// Scope: same host, within the path prefix.
			if discoveredURL.Host != parsed.Host {
				continue
			}
			if !strings.HasPrefix(discoveredURL.Path, pathPrefix) {
				continue
			}
			if !urlFilter.Match(discovered.URL) {
				continue
			}
			frontier.Push(discovered)
		}
	}

	return urls, nil
}
