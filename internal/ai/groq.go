package ai

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

const groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

// GroqProvider calls Groq's OpenAI-compatible chat completions API in JSON mode.
type GroqProvider struct {
	apiKey      string
	model       string
	temperature float32
	endpoint    string
	httpClient  *http.Client
}

// NewGroqProvider creates a provider for the given model.
func NewGroqProvider(apiKey, model string, temperature float32) *GroqProvider {
	return &GroqProvider{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		endpoint:    groqEndpoint,
		// Structured itinerary replies are long; context cancellation still applies.
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqRequest struct {
	Model          string            `json:"model"`
	Messages       []groqMessage     `json:"messages"`
	Temperature    float32           `json:"temperature"`
	Stream         bool              `json:"stream"`
	ResponseFormat map[string]string `json:"response_format"`
}

type groqResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateJSON sends the prompt as a system+user message pair. Groq's JSON mode
// does not take a schema, so callers embed it in the system message.
func (p *GroqProvider) GenerateJSON(ctx context.Context, prompt Prompt) (string, error) {
	reqBody, err := json.Marshal(groqRequest{
		Model: p.model,
		Messages: []groqMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Temperature:    p.temperature,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("groq: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("groq: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("groq: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq: api error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var gr groqResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("groq: unmarshal response: %w", err)
	}
	if gr.Error != nil {
		return "", fmt.Errorf("groq: api error: %s", gr.Error.Message)
	}
	if len(gr.Choices) == 0 || strings.TrimSpace(gr.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return gr.Choices[0].Message.Content, nil
}
