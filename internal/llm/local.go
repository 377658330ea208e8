package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Availability is the result of the on-device capability probe.
type Availability string

const (
	// AvailabilityReady means the local server is up and the model is present.
	AvailabilityReady Availability = "ready"
	// AvailabilityAfterDownload means the server is up but the model must be
	// pulled first.
	AvailabilityAfterDownload Availability = "after-download"
	// AvailabilityUnavailable means no local server could be reached.
	AvailabilityUnavailable Availability = "unavailable"
)

// localGenerator is the on-device backend, talking to an Ollama-compatible
// server on localhost. Prompts sent here never leave the machine.
type localGenerator struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewLocalGenerator creates the on-device backend. No probing happens here;
// call Probe before relying on it.
func NewLocalGenerator(baseURL, model string) *localGenerator {
	return &localGenerator{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		// Local generation on CPU can be slow; the transport timeout is the
		// only timeout in the pipeline.
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

type localTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Probe checks whether the local server is reachable and whether the
// configured model is already present.
func (l *localGenerator) Probe(ctx context.Context) Availability {
	client := &http.Client{Timeout: 3 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/api/tags", nil)
	if err != nil {
		return AvailabilityUnavailable
	}

	resp, err := client.Do(req)
	if err != nil {
		return AvailabilityUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AvailabilityUnavailable
	}

	var tags localTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return AvailabilityUnavailable
	}

	for _, m := range tags.Models {
		if m.Name == l.model || strings.TrimSuffix(m.Name, ":latest") == l.model {
			return AvailabilityReady
		}
	}
	return AvailabilityAfterDownload
}

// Pull downloads the configured model. Used when the probe reports
// after-download.
func (l *localGenerator) Pull(ctx context.Context) error {
	reqBody, err := json.Marshal(map[string]any{"name": l.model, "stream": false})
	if err != nil {
		return fmt.Errorf("failed to marshal pull request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/api/pull", bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create pull request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to pull model %s: %w", l.model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("model pull failed: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

// GenerateContent sends a prompt to the local model and returns the
// generated text.
func (l *localGenerator) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	reqBody := map[string]any{
		"model":  l.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]any{
			"temperature": geminiTemperature,
			"num_predict": geminiMaxOutputTokens,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/api/generate", bytes.NewBuffer(jsonBody))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return ContentResponse{}, fmt.Errorf("local ai error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var genResp struct {
		Response        string `json:"response"`
		PromptEvalCount int    `json:"prompt_eval_count"`
		EvalCount       int    `json:"eval_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return ContentResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return ContentResponse{
		Content: genResp.Response,
		Usage: TokenUsage{
			PromptTokens:     genResp.PromptEvalCount,
			CompletionTokens: genResp.EvalCount,
			TotalTokens:      genResp.PromptEvalCount + genResp.EvalCount,
			Model:            l.model,
		},
	}, nil
}
