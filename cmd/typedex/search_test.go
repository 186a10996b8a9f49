package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typedex/typedex"
	main "github.com/typedex/typedex/cmd/typedex"
	"github.com/typedex/typedex/mock"
	"github.com/typedex/typedex/retrieve"
)

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints matched code blocks", func(t *testing.T) {
		t.Parallel()

		retriever := &retrieve.Retriever{
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, text string) ([]float32, error) {
					return typedex.ZeroEmbedding(), nil
				},
			},
			Chunks: &mock.ChunkService{
				SearchSimilarFn: func(_ context.Context, query []float32, k int, filter typedex.SearchFilter) ([]typedex.SearchMatch, error) {
					return []typedex.SearchMatch{
						{Page: &typedex.CodePage{
							EnrichedChunk: typedex.EnrichedChunk{
								Chunk: typedex.Chunk{TypeName: "Atom", Content: "struct Atom {}"},
							},
						}, Score: 0.9},
					}, nil
				},
			},
			Source: testSource,
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Retriever: retriever,
		}

		cmd := &main.SearchCmd{Source: testSource, Query: "how do atoms work"}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "### Atom")
		assert.Contains(t, stdout.String(), "struct Atom {}")
	})

	t.Run("no matches prints the marker, not an error", func(t *testing.T) {
		t.Parallel()

		retriever := &retrieve.Retriever{
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, text string) ([]float32, error) {
					return typedex.ZeroEmbedding(), nil
				},
			},
			Chunks: &mock.ChunkService{
				SearchSimilarFn: func(_ context.Context, query []float32, k int, filter typedex.SearchFilter) ([]typedex.SearchMatch, error) {
					return nil, nil
				},
			},
			Source: testSource,
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Retriever: retriever,
		}

		cmd := &main.SearchCmd{Source: testSource, Query: "foo"}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), retrieve.NoRelevantCode)
	})
}
