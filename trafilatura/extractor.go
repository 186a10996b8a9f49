// Package trafilatura implements typedex.Extractor using go-trafilatura's
// content-density pruning to strip navigation, sidebars, and footers from
// documentation pages before markdown conversion.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/typedex/typedex"
	"golang.org/x/net/html"
)

var _ typedex.Extractor = (*Extractor)(nil)

// Extractor prunes boilerplate from HTML pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. The fallback
// extraction pass keeps sparse API-reference pages that the primary
// heuristics would reject.
func (e *Extractor) Extract(rawHTML string) (*typedex.ExtractResult, error) {
	if rawHTML == "" {
		return nil, typedex.Errorf(typedex.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &typedex.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}
