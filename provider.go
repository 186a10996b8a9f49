package typedex

import "context"

// Embedder converts text to a fixed-dimension embedding vector.
// Implementations return vectors of exactly EmbeddingDim dimensions or an
// error; substituting the zero-vector sentinel on failure is the caller's
// responsibility.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Summarizer produces a short natural-language summary of text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
