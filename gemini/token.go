package gemini

import (
	"context"

	"github.com/typedex/typedex"
	"google.golang.org/genai"
)

var _ typedex.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens via the Gemini API. Used for ingest statistics
// reported after a corpus is stored.
type TokenCounter struct {
	client *genai.Client
	model  string
}

// NewTokenCounter creates a new TokenCounter for the given model.
// An empty model selects SummaryModel.
func NewTokenCounter(client *genai.Client, model string) *TokenCounter {
	if model == "" {
		model = SummaryModel
	}
	return &TokenCounter{client: client, model: model}
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.client.Models.CountTokens(ctx, tc.model,
		[]*genai.Content{
			genai.NewContentFromText(text, "user"),
		},
		nil,
	)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
