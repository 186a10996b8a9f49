// Package gemini implements the typedex embedding and summary providers
// using the Google Gemini API.
package gemini

import (
	"context"

	"github.com/typedex/typedex"
	"google.golang.org/genai"
)

// EmbeddingModel is the model used to embed chunk content and queries.
const EmbeddingModel = "gemini-embedding-001"

// Ensure Embedder implements typedex.Embedder at compile time.
var _ typedex.Embedder = (*Embedder)(nil)

// Embedder converts text to embedding vectors using the Gemini API.
// All vectors have typedex.EmbeddingDim dimensions; substituting the
// zero-vector sentinel on failure is the pipeline's job, not the provider's.
type Embedder struct {
	client *genai.Client
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client) *Embedder {
	return &Embedder{client: client}
}

// Embed returns the embedding vector for the given text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, typedex.Errorf(typedex.EINVALID, "text required")
	}

	dim := int32(typedex.EmbeddingDim)
	result, err := e.client.Models.EmbedContent(ctx, EmbeddingModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: text}},
		}},
		&genai.EmbedContentConfig{
			OutputDimensionality: &dim,
		},
	)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, typedex.Errorf(typedex.EINTERNAL, "gemini returned no embeddings")
	}

	values := result.Embeddings[0].Values
	if len(values) != typedex.EmbeddingDim {
		return nil, typedex.Errorf(typedex.EINTERNAL, "gemini returned %d-dimensional embedding, want %d", len(values), typedex.EmbeddingDim)
	}

	return values, nil
}
