package llmadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GeminiModel is the exact generateContent model id used by every call.
const GeminiModel = "gemini-1.5-flash"

// GeminiAdapter calls the Gemini generateContent endpoint directly over
// net/http, grounded on the raw-HTTP Gemini client pattern found in the
// retrieval pack's other_examples/.
type GeminiAdapter struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

func NewGeminiAdapter(apiKey string, httpClient *http.Client) *GeminiAdapter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GeminiAdapter{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    "https://generativelanguage.googleapis.com/v1beta/models",
	}
}

func (a *GeminiAdapter) ID() string { return "gemini" }

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (a *GeminiAdapter) Ask(ctx context.Context, query string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: query}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     Temperature,
			MaxOutputTokens: MaxOutputTokens,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", a.baseURL, GeminiModel, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: reading response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("gemini: decoding response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty candidates in response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
