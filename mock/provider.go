package mock

import (
	"context"

	"github.com/typedex/typedex"
)

var _ typedex.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of typedex.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

var _ typedex.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of typedex.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, text string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	return s.SummarizeFn(ctx, text)
}

var _ typedex.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of typedex.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
