package gemini

import (
	"context"
	"strings"

	"github.com/typedex/typedex"
	"google.golang.org/genai"
)

// SummaryModel is the model used to summarize chunk content.
const SummaryModel = "gemini-2.5-flash"

// Ensure Summarizer implements typedex.Summarizer at compile time.
var _ typedex.Summarizer = (*Summarizer)(nil)

// Summarizer produces short summaries of code documentation chunks using
// the Gemini API.
type Summarizer struct {
	client *genai.Client
	model  string
}

// NewSummarizer creates a new Summarizer. An empty model selects
// SummaryModel.
func NewSummarizer(client *genai.Client, model string) *Summarizer {
	if model == "" {
		model = SummaryModel
	}
	return &Summarizer{client: client, model: model}
}

// Summarize returns a concise summary of the given chunk content.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", typedex.Errorf(typedex.EINVALID, "text required")
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: text}},
		}},
		BuildSummaryConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", typedex.Errorf(typedex.EINTERNAL, "gemini returned nil result")
	}

	summary := strings.TrimSpace(result.Text())
	if summary == "" {
		return "", typedex.Errorf(typedex.EINTERNAL, "gemini returned empty summary")
	}

	return summary, nil
}

// BuildSummaryConfig returns the GenerateContentConfig for summary calls.
func BuildSummaryConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an expert at summarizing content from type documentation and code examples. Return the concise summary and nothing else.",
			}},
		},
		Temperature: &temp,
	}
}
