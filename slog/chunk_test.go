package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typedex/typedex"
	"github.com/typedex/typedex/mock"
	typedexslog "github.com/typedex/typedex/slog"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingChunkService(t *testing.T) {
	t.Parallel()

	t.Run("create chunk logs type and source", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ChunkService{
			CreateChunkFn: func(ctx context.Context, page *typedex.CodePage) error {
				return nil
			},
		}

		svc := typedexslog.NewLoggingChunkService(inner, debugLogger(&buf))
		page := &typedex.CodePage{
			EnrichedChunk: typedex.EnrichedChunk{
				Chunk: typedex.Chunk{TypeName: "Atom", Index: 2},
			},
			Source: "swiftui-atom-properties",
		}
		require.NoError(t, svc.CreateChunk(context.Background(), page))

		output := buf.String()
		assert.Contains(t, output, "create chunk")
		assert.Contains(t, output, "type=Atom")
		assert.Contains(t, output, "index=2")
		assert.Contains(t, output, "source=swiftui-atom-properties")
	})

	t.Run("search logs k and result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ChunkService{
			SearchSimilarFn: func(ctx context.Context, query []float32, k int, filter typedex.SearchFilter) ([]typedex.SearchMatch, error) {
				return []typedex.SearchMatch{{}, {}}, nil
			},
		}

		svc := typedexslog.NewLoggingChunkService(inner, debugLogger(&buf))
		matches, err := svc.SearchSimilar(context.Background(), typedex.ZeroEmbedding(), 5, typedex.SearchFilter{})
		require.NoError(t, err)
		assert.Len(t, matches, 2)

		output := buf.String()
		assert.Contains(t, output, "similarity search")
		assert.Contains(t, output, "k=5")
		assert.Contains(t, output, "count=2")
	})
}

func TestLoggingEmbedder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.Embedder{
		EmbedFn: func(ctx context.Context, text string) ([]float32, error) {
			return typedex.ZeroEmbedding(), nil
		},
	}

	e := typedexslog.NewLoggingEmbedder(inner, debugLogger(&buf))
	v, err := e.Embed(context.Background(), "struct Atom {}")
	require.NoError(t, err)
	assert.Len(t, v, typedex.EmbeddingDim)

	output := buf.String()
	assert.Contains(t, output, "embed")
	assert.Contains(t, output, "dims=1536")
}
