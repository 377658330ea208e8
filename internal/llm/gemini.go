package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generation parameters match what the plan documents were tuned against.
const (
	geminiTemperature     = 0.7
	geminiMaxOutputTokens = 2048
)

// geminiGenerator is the remote backend, talking to the Gemini API with a
// stored key.
type geminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

// NewGeminiGenerator creates the remote Gemini backend.
func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (TextGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(geminiTemperature)
	model.SetMaxOutputTokens(geminiMaxOutputTokens)

	return &geminiGenerator{client: client, model: model, name: modelName}, nil
}

// GenerateContent sends a prompt to the Gemini model and returns the
// generated text.
func (g *geminiGenerator) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ContentResponse{}, fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return ContentResponse{}, fmt.Errorf("generated content is not text")
	}

	usage := TokenUsage{Model: g.name}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return ContentResponse{Content: string(text), Usage: usage}, nil
}

// Close closes the underlying Gemini client.
func (g *geminiGenerator) Close() error {
	return g.client.Close()
}
