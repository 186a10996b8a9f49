package sqlite

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/typedex/typedex"
)

// Compile-time interface verification.
var _ typedex.ChunkService = (*ChunkService)(nil)

// ChunkService implements typedex.ChunkService using SQLite. Embeddings are
// stored as little-endian float32 blobs and ranked in Go with cosine
// similarity; at documentation-corpus scale a linear scan over the
// source-filtered rows is well within budget.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateChunk inserts a new page. The store is append-only: duplicate
// (type_name, chunk_idx, source) coordinates coexist with earlier rows.
func (s *ChunkService) CreateChunk(ctx context.Context, page *typedex.CodePage) error {
	if err := page.Validate(); err != nil {
		return err
	}

	page.ID = uuid.New().String()
	page.ContentHash = hashContent(page.Content)

	metadata, err := json.Marshal(page.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO code_pages (id, type_name, chunk_idx, summary, content, content_hash, metadata, embedding, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, page.ID, page.TypeName, page.Index, page.Summary, page.Content, page.ContentHash,
		string(metadata), encodeEmbedding(page.Embedding), page.Source)

	return err
}

// FindChunksByType retrieves all pages for a type within a corpus, ordered
// by chunk index ascending. This ordering is what reconstructs a type's
// full source from its chunks.
func (s *ChunkService) FindChunksByType(ctx context.Context, typeName, source string) ([]*typedex.CodePage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type_name, chunk_idx, summary, content, content_hash, metadata, embedding, source
		FROM code_pages
		WHERE type_name = ? AND source = ?
		ORDER BY chunk_idx ASC
	`, typeName, source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPages(rows)
}

// ListTypeNames returns the sorted, deduplicated type names stored for a
// corpus. Degenerate chunks (empty type name) are excluded.
func (s *ChunkService) ListTypeNames(ctx context.Context, source string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT type_name
		FROM code_pages
		WHERE source = ? AND type_name != ''
		ORDER BY type_name ASC
	`, source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// SearchSimilar ranks stored pages by cosine similarity against the query
// embedding, descending, returning at most k matches. Rows whose embedding
// is the zero-vector sentinel score 0 and rank last; they never cause a
// format error.
func (s *ChunkService) SearchSimilar(ctx context.Context, query []float32, k int, filter typedex.SearchFilter) ([]typedex.SearchMatch, error) {
	if len(query) != typedex.EmbeddingDim {
		return nil, typedex.Errorf(typedex.EINVALID, "query embedding must have %d dimensions, got %d", typedex.EmbeddingDim, len(query))
	}
	if k <= 0 {
		return nil, typedex.Errorf(typedex.EINVALID, "match count must be positive")
	}

	var sb strings.Builder
	var args []any

	sb.WriteString(`
		SELECT id, type_name, chunk_idx, summary, content, content_hash, metadata, embedding, source
		FROM code_pages WHERE 1=1`)

	if filter.Source != nil {
		sb.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.FilePath != nil {
		// Metadata filtering is by JSON-path equality.
		sb.WriteString(" AND json_extract(metadata, '$.file_path') = ?")
		args = append(args, *filter.FilePath)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages, err := scanPages(rows)
	if err != nil {
		return nil, err
	}

	matches := make([]typedex.SearchMatch, 0, len(pages))
	for _, page := range pages {
		matches = append(matches, typedex.SearchMatch{
			Page:  page,
			Score: cosineSimilarity(query, page.Embedding),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// scanPages reads code_pages rows into domain objects.
func scanPages(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*typedex.CodePage, error) {
	var pages []*typedex.CodePage
	for rows.Next() {
		var page typedex.CodePage
		var metadata string
		var embedding []byte

		if err := rows.Scan(&page.ID, &page.TypeName, &page.Index, &page.Summary,
			&page.Content, &page.ContentHash, &metadata, &embedding, &page.Source); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(metadata), &page.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}
		page.Embedding = decodeEmbedding(embedding)
		page.FilePath = page.Metadata.FilePath

		pages = append(pages, &page)
	}
	return pages, rows.Err()
}
