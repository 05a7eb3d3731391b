// Package openai implements pkg/llm's Chatter client for OpenAI-compatible
// chat completion APIs, including hosted services like Groq.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ncuacg/assistant/pkg/llm"
)

const (
	// DefaultChatModel is the default model used for chat completions.
	DefaultChatModel = "gpt-4o-mini"

	// DefaultBaseURL is the default OpenAI API URL.
	DefaultBaseURL = "https://api.openai.com"
)

// Chatter wraps an OpenAI-compatible chat completions API.
type Chatter struct {
	baseURL     string
	model       string
	apiKey      string
	temperature float64
	httpClient  *http.Client
}

// ChatterConfig holds configuration for the OpenAI-compatible chatter.
type ChatterConfig struct {
	// BaseURL is the API URL (e.g., "https://api.groq.com/openai").
	// Defaults to DefaultBaseURL if empty.
	BaseURL string

	// Model is the chat model to use. Defaults to DefaultChatModel if empty.
	Model string

	// APIKey is sent as a bearer token when non-empty.
	APIKey string

	// Temperature controls sampling. Zero is passed through as-is.
	Temperature float64
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

// chatResponse is the response from the chat completions API.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewChatter creates a new chatter for an OpenAI-compatible API.
func NewChatter(cfg ChatterConfig) (*Chatter, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultChatModel
	}

	return &Chatter{
		baseURL:     baseURL,
		model:       model,
		apiKey:      cfg.APIKey,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// Chat sends a system prompt and user message and returns the reply text.
func (c *Chatter) Chat(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshaling request: %v", llm.ErrChat, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", llm.ErrChat, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: sending request: %v", llm.ErrChat, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: api returned status %d: %s", llm.ErrChat, resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", llm.ErrChat, err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", llm.ErrChat)
	}

	return chatResp.Choices[0].Message.Content, nil
}

// Close releases resources held by the chatter.
func (c *Chatter) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

// Ensure Chatter implements llm.Chatter
var _ llm.Chatter = (*Chatter)(nil)
