// Package http implements typedex.Fetcher and typedex.SitemapService over
// plain HTTP, for static documentation sites that render without JavaScript.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/typedex/typedex"
)

// DefaultFetchTimeout bounds a single page request.
const DefaultFetchTimeout = 10 * time.Second

var _ typedex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML over HTTP. It does not execute JavaScript; use
// rod.Fetcher for JS-rendered sites.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates an HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Fetch retrieves the HTML content at url. Non-200 responses are reported
// with an error code so callers can distinguish missing pages from sites
// that are temporarily refusing requests.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Close is a no-op; http.Client needs no explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// statusError maps an HTTP status to an application error code.
func statusError(status int, url string) error {
	code := typedex.EINTERNAL
	switch {
	case status == http.StatusNotFound || status == http.StatusGone:
		code = typedex.ENOTFOUND
	case status == http.StatusTooManyRequests:
		code = typedex.EUNAVAILABLE
	case status >= 500:
		code = typedex.EUNAVAILABLE
	}
	return typedex.Errorf(code, "HTTP %d for %s", status, url)
}
