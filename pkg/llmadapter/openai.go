package llmadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OpenAIModel is the exact chat-completions model id used by every call.
const OpenAIModel = "gpt-4o-mini"

// OpenAIAdapter calls the OpenAI chat completions endpoint directly over
// net/http, without pulling in an SDK — grounded on the raw-HTTP OpenAI
// client pattern found in the retrieval pack's other_examples/.
type OpenAIAdapter struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewOpenAIAdapter builds an adapter for the given API key. httpClient may
// be nil, in which case http.DefaultClient is used.
func NewOpenAIAdapter(apiKey string, httpClient *http.Client) *OpenAIAdapter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenAIAdapter{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    "https://api.openai.com/v1/chat/completions",
	}
}

func (a *OpenAIAdapter) ID() string { return "openai" }

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (a *OpenAIAdapter) Ask(ctx context.Context, query string) (string, error) {
	reqBody := openAIRequest{
		Model:       OpenAIModel,
		Messages:    []openAIMessage{{Role: "user", Content: query}},
		Temperature: Temperature,
		MaxTokens:   MaxOutputTokens,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai: reading response: %w", err)
	}

	var parsed openAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("openai: decoding response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai: unexpected status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai: empty choices in response")
	}
	return parsed.Choices[0].Message.Content, nil
}
