package typedex

import (
	"context"
	"time"
)

// EmbeddingDim is the dimensionality of embedding vectors stored in the
// index. Every stored embedding has exactly this length, including the
// zero-vector sentinel substituted on provider failure.
const EmbeddingDim = 1536

// SummaryUnavailable is the sentinel summary substituted when the summary
// provider fails for a chunk. Enrichment never fails a batch over a single
// summary.
const SummaryUnavailable = "Error summarizing content"

// ZeroEmbedding returns the sentinel vector substituted when the embedding
// provider fails. It preserves EmbeddingDim so similarity search never sees
// a length mismatch.
func ZeroEmbedding() []float32 {
	return make([]float32, EmbeddingDim)
}

// Chunk is one contiguous slice of the documentation corpus, produced by
// splitting and addressed by the type it documents.
type Chunk struct {
	// TypeName is the logical entity the chunk belongs to (the file stem of
	// FilePath). Empty for degenerate chunks whose header failed to parse.
	TypeName string `json:"typeName"`

	// FilePath is the origin path parsed from the chunk header.
	FilePath string `json:"filePath"`

	// Index is the chunk's position within its type, assigned in source
	// order starting at 0.
	Index int `json:"index"`

	// Content is the chunk body. Degenerate chunks keep the full block text.
	Content string `json:"content"`
}

// Degenerate reports whether the chunk's header failed to parse. Degenerate
// chunks are kept with their raw text intact, never dropped.
func (c *Chunk) Degenerate() bool {
	return c.TypeName == ""
}

// Metadata is stamped onto a chunk at enrichment time.
type Metadata struct {
	// Source is the corpus label scoping every read path.
	Source string `json:"source"`

	// ChunkSize is the content length in bytes.
	ChunkSize int `json:"chunk_size"`

	// CreatedAt is the UTC enrichment timestamp.
	CreatedAt time.Time `json:"created_at"`

	// FilePath duplicates the chunk origin path for metadata filtering.
	FilePath string `json:"file_path"`
}

// EnrichedChunk is a Chunk plus the summary, embedding, and metadata
// produced by the enrichment pipeline. Immutable once persisted.
type EnrichedChunk struct {
	Chunk

	Summary   string    `json:"summary"`
	Embedding []float32 `json:"embedding"`
	Metadata  Metadata  `json:"metadata"`
}

// CodePage is a stored enriched chunk. The store assigns ID on insert and
// pins Source as the corpus discriminator; many CodePages share a TypeName
// and reconstruct the type's full source ordered by Index.
type CodePage struct {
	EnrichedChunk

	ID     string `json:"id"`
	Source string `json:"source"`

	// ContentHash is assigned by the store on insert.
	ContentHash string `json:"contentHash"`
}

// Validate returns an error if the page cannot be stored.
func (p *CodePage) Validate() error {
	if p.Source == "" {
		return Errorf(EINVALID, "code page source required")
	}
	if p.Index < 0 {
		return Errorf(EINVALID, "code page chunk index must not be negative")
	}
	if len(p.Embedding) != EmbeddingDim {
		return Errorf(EINVALID, "code page embedding must have %d dimensions, got %d", EmbeddingDim, len(p.Embedding))
	}
	return nil
}

// SearchFilter restricts similarity search to matching metadata.
type SearchFilter struct {
	// Source, if set, restricts results to one corpus.
	Source *string `json:"source"`

	// FilePath, if set, restricts results to chunks from one origin path.
	FilePath *string `json:"filePath"`
}

// SearchMatch is a similarity search hit.
type SearchMatch struct {
	Page  *CodePage `json:"page"`
	Score float32   `json:"score"`
}

// ChunkService is the durable, append-only repository of enriched chunks.
//
// The store enforces no uniqueness on (TypeName, Index, Source): re-ingesting
// the same coordinates inserts a new row and both rows remain visible.
// Deduplication is an ingestion-policy concern, not a store concern.
type ChunkService interface {
	// CreateChunk inserts a new page. Never updates existing rows.
	CreateChunk(ctx context.Context, page *CodePage) error

	// FindChunksByType retrieves all pages for a type within a corpus,
	// ordered by chunk index ascending.
	FindChunksByType(ctx context.Context, typeName, source string) ([]*CodePage, error)

	// ListTypeNames returns the sorted, deduplicated type names stored for
	// a corpus. An empty corpus yields an empty slice, not an error.
	ListTypeNames(ctx context.Context, source string) ([]string, error)

	// SearchSimilar ranks stored pages by cosine similarity against the
	// query embedding, descending, returning at most k matches. The query
	// must have EmbeddingDim dimensions.
	SearchSimilar(ctx context.Context, query []float32, k int, filter SearchFilter) ([]SearchMatch, error)
}
