package mock

import (
	"context"

	"github.com/typedex/typedex"
)

var _ typedex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of typedex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ typedex.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of typedex.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*typedex.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*typedex.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ typedex.Converter = (*Converter)(nil)

// Converter is a mock implementation of typedex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ typedex.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of typedex.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *typedex.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *typedex.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ typedex.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of typedex.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}

var _ typedex.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of typedex.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]typedex.DiscoveredLink, error)
	NameFn         func() string
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]typedex.DiscoveredLink, error) {
	return s.ExtractLinksFn(html, baseURL)
}

func (s *LinkSelector) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}
