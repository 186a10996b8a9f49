// Package mock provides function-field mock implementations of typedex
// interfaces for testing.
package mock

import (
	"context"

	"github.com/typedex/typedex"
)

var _ typedex.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of typedex.ChunkService.
type ChunkService struct {
	CreateChunkFn      func(ctx context.Context, page *typedex.CodePage) error
	FindChunksByTypeFn func(ctx context.Context, typeName, source string) ([]*typedex.CodePage, error)
	ListTypeNamesFn    func(ctx context.Context, source string) ([]string, error)
	SearchSimilarFn    func(ctx context.Context, query []float32, k int, filter typedex.SearchFilter) ([]typedex.SearchMatch, error)
}

func (s *ChunkService) CreateChunk(ctx context.Context, page *typedex.CodePage) error {
	return s.CreateChunkFn(ctx, page)
}

func (s *ChunkService) FindChunksByType(ctx context.Context, typeName, source string) ([]*typedex.CodePage, error) {
	return s.FindChunksByTypeFn(ctx, typeName, source)
}

func (s *ChunkService) ListTypeNames(ctx context.Context, source string) ([]string, error) {
	return s.ListTypeNamesFn(ctx, source)
}

func (s *ChunkService) SearchSimilar(ctx context.Context, query []float32, k int, filter typedex.SearchFilter) ([]typedex.SearchMatch, error) {
	return s.SearchSimilarFn(ctx, query, k, filter)
}
