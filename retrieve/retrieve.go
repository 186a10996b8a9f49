// Package retrieve implements the query-time operations consumed by the
// calling agent: similarity search over stored chunks, type-name
// enumeration, and full type source reconstruction.
//
// Every operation returns a best-effort value with failure communicated as
// content; the agent-facing surface never receives an error.
package retrieve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/typedex/typedex"
)

// DefaultLimit caps similarity search results.
const DefaultLimit = 5

// Lexical markers the calling agent uses to detect the empty case.
const (
	NoRelevantCode = "No relevant source code found"
	noCodeForType  = "No code found for Type: %s"
)

// chunkSeparator joins formatted hits in RelevantCode output.
const chunkSeparator = "\n\n---\n\n"

// Retriever serves retrieval-augmented context from the chunk store.
type Retriever struct {
	Embedder typedex.Embedder
	Chunks   typedex.ChunkService

	// Source pins every read to one corpus.
	Source string

	// Limit caps similarity search results. Non-positive selects
	// DefaultLimit.
	Limit int

	// Logger receives failure diagnostics. Nil uses slog.Default.
	Logger *slog.Logger
}

// RelevantCode embeds the query, runs similarity search scoped to the
// configured corpus, and returns the top hits formatted as type-headed
// blocks. An empty result set or any failure yields the NoRelevantCode
// marker, never an error or an empty string.
func (r *Retriever) RelevantCode(ctx context.Context, query string) string {
	embedding, err := r.Embedder.Embed(ctx, query)
	if err != nil {
		r.logger().Error("query embedding failed", "query", query, "error", err)
		return NoRelevantCode
	}

	matches, err := r.Chunks.SearchSimilar(ctx, embedding, r.limit(), typedex.SearchFilter{
		Source: &r.Source,
	})
	if err != nil {
		r.logger().Error("similarity search failed", "query", query, "error", err)
		return NoRelevantCode
	}
	if len(matches) == 0 {
		return NoRelevantCode
	}

	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, fmt.Sprintf("### %s\n\n%s", m.Page.TypeName, m.Page.Content))
	}
	return strings.Join(blocks, chunkSeparator)
}

// TypeNames returns the sorted type names stored for the corpus.
// Failures yield an empty slice, never an error.
func (r *Retriever) TypeNames(ctx context.Context) []string {
	names, err := r.Chunks.ListTypeNames(ctx, r.Source)
	if err != nil {
		r.logger().Error("type name listing failed", "error", err)
		return []string{}
	}
	return names
}

// SourceForType reconstructs a type's full source as the ordered
// concatenation of its chunks. An empty result set yields the explicit
// not-found marker, never an empty string.
func (r *Retriever) SourceForType(ctx context.Context, typeName string) string {
	pages, err := r.Chunks.FindChunksByType(ctx, typeName, r.Source)
	if err != nil {
		r.logger().Error("type source lookup failed", "type", typeName, "error", err)
		return fmt.Sprintf(noCodeForType, typeName)
	}
	if len(pages) == 0 {
		return fmt.Sprintf(noCodeForType, typeName)
	}

	contents := make([]string, 0, len(pages))
	for _, page := range pages {
		contents = append(contents, page.Content)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "File Path: %s\n", pages[0].Metadata.FilePath)
	fmt.Fprintf(&sb, "```swift\n%s\n```", strings.Join(contents, "\n\n"))
	return sb.String()
}

func (r *Retriever) limit() int {
	if r.Limit > 0 {
		return r.Limit
	}
	return DefaultLimit
}

func (r *Retriever) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
