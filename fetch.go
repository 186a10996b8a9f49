package typedex

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content, or plain HTTP for static sites.
type Fetcher interface {
	// Fetch navigates to the URL and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// ExtractResult holds the pruned content of an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor prunes low-information boilerplate from HTML pages.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML content into Markdown.
	Convert(html string) (string, error)
}

// FetchResult is the per-URL outcome of a batch fetch. A failed URL carries
// Err and empty content; it never aborts the rest of the batch.
type FetchResult struct {
	URL      string
	Title    string
	Markdown string
	Err      error
}

// Success reports whether the URL was fetched and converted.
func (r *FetchResult) Success() bool {
	return r.Err == nil
}

// FetchProgress reports progress during batch fetching.
type FetchProgress struct {
	URL       string
	Completed int
	Total     int
	Err       error
}

// FetchProgressFunc is called as URLs complete or fail.
type FetchProgressFunc func(FetchProgress)
