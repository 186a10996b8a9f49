package main

import (
	"fmt"

	"github.com/typedex/typedex"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	urlFilter, err := compileFilters(c.Filter, deps)
	if err != nil {
		return err
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, urlFilter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", typedex.ErrorMessage(err))
		return err
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No URLs found in sitemap. Ingest will fall back to recursive discovery.")
		return nil
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}
