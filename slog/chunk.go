package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/typedex/typedex"
)

var _ typedex.ChunkService = (*LoggingChunkService)(nil)

// LoggingChunkService wraps a ChunkService with debug logging.
type LoggingChunkService struct {
	next   typedex.ChunkService
	logger *slog.Logger
}

// NewLoggingChunkService creates a new LoggingChunkService.
func NewLoggingChunkService(next typedex.ChunkService, logger *slog.Logger) *LoggingChunkService {
	return &LoggingChunkService{next: next, logger: logger}
}

// CreateChunk delegates to the wrapped service and logs the operation.
func (s *LoggingChunkService) CreateChunk(ctx context.Context, page *typedex.CodePage) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create chunk",
			"type", page.TypeName,
			"index", page.Index,
			"source", page.Source,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateChunk(ctx, page)
}

// FindChunksByType delegates to the wrapped service and logs the operation.
func (s *LoggingChunkService) FindChunksByType(ctx context.Context, typeName, source string) (pages []*typedex.CodePage, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find chunks",
			"type", typeName,
			"source", source,
			"count", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindChunksByType(ctx, typeName, source)
}

// ListTypeNames delegates to the wrapped service and logs the operation.
func (s *LoggingChunkService) ListTypeNames(ctx context.Context, source string) (names []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("list type names",
			"source", source,
			"count", len(names),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListTypeNames(ctx, source)
}

// SearchSimilar delegates to the wrapped service and logs the operation.
func (s *LoggingChunkService) SearchSimilar(ctx context.Context, query []float32, k int, filter typedex.SearchFilter) (matches []typedex.SearchMatch, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("similarity search",
			"k", k,
			"count", len(matches),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchSimilar(ctx, query, k, filter)
}
