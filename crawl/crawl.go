// Package crawl provides the concurrency-bounded fetch dispatcher.
// It coordinates rate-limited page fetching, content pruning, and markdown
// conversion for a batch of documentation URLs.
package crawl

import (
	"net/url"
	"sync/atomic"
	"time"

	"context"

	"github.com/typedex/typedex"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds in-flight requests when the caller does not
// configure a pool size.
const DefaultConcurrency = 5

// Dispatcher fetches a batch of documentation URLs with bounded concurrency.
// A single URL's failure never prevents other URLs from completing: the
// result set always has one entry per input URL, in input order.
type Dispatcher struct {
	Fetcher   typedex.Fetcher
	Extractor typedex.Extractor
	Converter typedex.Converter

	// Limiter paces requests per domain. Optional.
	Limiter typedex.DomainLimiter

	// Gate applies adaptive memory-based admission before each fetch.
	// Nil means fixed-pool admission only.
	Gate *MemoryGate

	// Concurrency caps in-flight requests. Defaults to DefaultConcurrency.
	Concurrency int

	// RetryDelays configure transient-failure backoff.
	// Defaults to DefaultRetryDelays().
	RetryDelays []time.Duration
}

// FetchAll fetches every URL and returns one result per URL in input order.
// Failed URLs carry their error in the result; the batch itself never fails.
// The progress callback, if provided, receives an event per completed URL.
func (d *Dispatcher) FetchAll(ctx context.Context, urls []string, progress typedex.FetchProgressFunc) []typedex.FetchResult {
	results := make([]typedex.FetchResult, len(urls))

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var completed atomic.Int64
	total := len(urls)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			results[i] = d.processURL(gctx, u)

			if progress != nil {
				progress(typedex.FetchProgress{
					URL:       u,
					Completed: int(completed.Add(1)),
					Total:     total,
					Err:       results[i].Err,
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// processURL fetches one URL and converts it to markdown.
func (d *Dispatcher) processURL(ctx context.Context, pageURL string) typedex.FetchResult {
	result := typedex.FetchResult{URL: pageURL}

	if d.Gate != nil {
		if err := d.Gate.Wait(ctx); err != nil {
			result.Err = err
			return result
		}
	}

	if d.Limiter != nil {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			result.Err = typedex.Errorf(typedex.EINVALID, "invalid URL %q: %v", pageURL, err)
			return result
		}
		if err := d.Limiter.Wait(ctx, parsed.Host); err != nil {
			result.Err = err
			return result
		}
	}

	delays := d.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, d.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.Err = err
		return result
	}

	extracted, err := d.Extractor.Extract(html)
	if err != nil {
		result.Err = err
		return result
	}

	markdown, err := d.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		result.Err = err
		return result
	}

	result.Title = extracted.Title
	result.Markdown = markdown
	return result
}
