package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/typedex/typedex"
	"github.com/typedex/typedex/crawl"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	urlFilter, err := compileFilters(c.Filter, deps)
	if err != nil {
		return err
	}

	document, err := c.corpusDocument(deps, urlFilter)
	if err != nil {
		return err
	}
	if document == "" {
		fmt.Fprintln(deps.Stdout, "Nothing to ingest")
		return nil
	}

	chunks := typedex.Split(document, typedex.DefaultMarkers())
	if len(chunks) == 0 {
		fmt.Fprintln(deps.Stdout, "Nothing to ingest")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "  Split into %d chunks\n", len(chunks))

	result := deps.Enricher.Ingest(deps.Ctx, chunks)

	fmt.Fprintf(deps.Stdout, "  Indexed %d chunks (%d degenerate, %d failed writes, %s, %s)\n",
		result.Stored, result.Degenerate, result.Failed,
		crawl.FormatBytes(result.Bytes), crawl.FormatTokens(result.Tokens))
	return nil
}

// corpusDocument produces the aggregated markdown corpus, either from a
// pre-fetched file or by crawling the site.
func (c *IngestCmd) corpusDocument(deps *Dependencies, urlFilter *typedex.URLFilter) (string, error) {
	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot read %s: %v\n", c.File, err)
			return "", err
		}
		return string(data), nil
	}

	if c.URL == "" {
		fmt.Fprintln(deps.Stderr, "error: a documentation URL is required unless --file is given")
		return "", typedex.Errorf(typedex.EINVALID, "ingest requires a URL or --file")
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, urlFilter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", typedex.ErrorMessage(err))
		return "", err
	}

	// Sites without a sitemap fall back to recursive link discovery.
	if len(urls) == 0 && deps.Discoverer != nil {
		urls, err = deps.Discoverer.DiscoverURLs(deps.Ctx, c.URL, urlFilter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", typedex.ErrorMessage(err))
			return "", err
		}
	}
	if len(urls) == 0 {
		return "", nil
	}
	fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", len(urls))

	results := deps.Dispatcher.FetchAll(deps.Ctx, urls, func(p typedex.FetchProgress) {
		if p.Err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(p.URL, 60), p.Err)
		}
	})

	return crawl.AggregateCorpus(results), nil
}

// compileFilters builds a URLFilter from repeatable --filter patterns.
func compileFilters(patterns []string, deps *Dependencies) (*typedex.URLFilter, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	filter := &typedex.URLFilter{}
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: invalid filter pattern %q: %v\n", pattern, err)
			return nil, err
		}
		filter.Include = append(filter.Include, re)
	}
	return filter, nil
}
