package llmadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// AnthropicModel is the exact messages-API model id used by every call.
const AnthropicModel = "claude-haiku-4-5-20251001"

// AnthropicAdapter calls the Anthropic messages endpoint directly over
// net/http, mirroring OpenAIAdapter's shape.
type AnthropicAdapter struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

func NewAnthropicAdapter(apiKey string, httpClient *http.Client) *AnthropicAdapter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &AnthropicAdapter{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    "https://api.anthropic.com/v1/messages",
	}
}

func (a *AnthropicAdapter) ID() string { return "anthropic" }

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (a *AnthropicAdapter) Ask(ctx context.Context, query string) (string, error) {
	reqBody := anthropicRequest{
		Model:       AnthropicModel,
		MaxTokens:   MaxOutputTokens,
		Temperature: Temperature,
		Messages:    []anthropicMessage{{Role: "user", Content: query}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("anthropic: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("anthropic: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("anthropic: reading response: %w", err)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("anthropic: decoding response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("anthropic: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic: unexpected status %d", resp.StatusCode)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("anthropic: empty content in response")
	}
	return parsed.Content[0].Text, nil
}
