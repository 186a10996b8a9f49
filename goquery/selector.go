// Package goquery implements typedex.LinkSelector using CSS selectors,
// for recursive URL discovery on sites without a sitemap.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/typedex/typedex"
)

var _ typedex.LinkSelector = (*GenericSelector)(nil)

// selectorConfig pairs a CSS selector with the priority and source label its
// links receive.
type selectorConfig struct {
	selector string
	priority typedex.LinkPriority
	source   string
}

// genericConfigs are universal selectors that work across documentation
// frameworks, ordered highest priority first.
var genericConfigs = []selectorConfig{
	{".toc a[href], .table-of-contents a[href], .sidebar a[href], aside a[href]", typedex.PriorityTOC, "toc"},
	{`nav a[href], [role="navigation"] a[href], .nav a[href], .menu a[href], .navbar a[href]`, typedex.PriorityNavigation, "nav"},
	{"main a[href], article a[href], .content a[href], .doc-content a[href]", typedex.PriorityContent, "content"},
	{"footer a[href], .footer a[href]", typedex.PriorityFooter, "footer"},
}

// GenericSelector extracts prioritized links using common HTML patterns and
// class names to identify TOC, navigation, content, and footer areas. Pages
// built without semantic markup still yield links through a low-priority
// fallback pass over every anchor under the base URL's path.
type GenericSelector struct{}

// NewGenericSelector creates a new GenericSelector.
func NewGenericSelector() *GenericSelector {
	return &GenericSelector{}
}

// Name returns the selector's identifier.
func (s *GenericSelector) Name() string {
	return "generic"
}

// ExtractLinks parses HTML and returns discovered links with priority.
// Links are deduplicated by URL, keeping the highest-priority version, and
// ordered by first occurrence. External links are filtered out.
func (s *GenericSelector) ExtractLinks(html string, baseURL string) ([]typedex.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, typedex.Errorf(typedex.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, typedex.Errorf(typedex.EINVALID, "failed to parse HTML: %v", err)
	}

	// seen maps URL to its index in links, so a higher-priority duplicate
	// can replace in place without reordering.
	seen := make(map[string]int)
	var links []typedex.DiscoveredLink

	add := func(resolved string, link typedex.DiscoveredLink) {
		if idx, ok := seen[resolved]; ok {
			if link.Priority > links[idx].Priority {
				links[idx] = link
			}
			return
		}
		seen[resolved] = len(links)
		links = append(links, link)
	}

	for _, cfg := range genericConfigs {
		doc.Find(cfg.selector).Each(func(_ int, sel *goquery.Selection) {
			resolved, ok := candidateURL(base, sel)
			if !ok {
				return
			}
			add(resolved, typedex.DiscoveredLink{
				URL:      resolved,
				Priority: cfg.priority,
				Text:     strings.TrimSpace(sel.Text()),
				Source:   cfg.source,
			})
		})
	}

	// Fallback pass: any anchor under the base path, at low priority.
	// Links already found through semantic selectors keep their priority.
	basePath := base.Path
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		resolved, ok := candidateURL(base, sel)
		if !ok {
			return
		}
		resolvedURL, err := url.Parse(resolved)
		if err != nil {
			return
		}
		if basePath != "" && !strings.HasPrefix(resolvedURL.Path, basePath) {
			return
		}
		add(resolved, typedex.DiscoveredLink{
			URL:      resolved,
			Priority: typedex.PriorityFallback,
			Text:     strings.TrimSpace(sel.Text()),
			Source:   "fallback",
		})
	})

	return links, nil
}

// candidateURL resolves an anchor's href against base and reports whether it
// is a crawlable same-host page link.
func candidateURL(base *url.URL, sel *goquery.Selection) (string, bool) {
	href, exists := sel.Attr("href")
	if !exists || href == "" {
		return "", false
	}
	if isNonHTTPLink(href) {
		return "", false
	}

	resolved := resolveURL(base, href)
	if resolved == "" {
		return "", false
	}
	if !isSameHost(base, resolved) {
		return "", false
	}
	return resolved, true
}

// resolveURL resolves href against base with the fragment stripped. Returns
// empty for unparseable or self-referential links.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost uses exact host matching; subdomains count as different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
