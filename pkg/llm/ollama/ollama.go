// Package ollama implements pkg/llm's Chatter client for Ollama's chat API
package ollama

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
	DefaultChatModel = "llama3.1"

	// DefaultBaseURL is the default Ollama API URL.
	DefaultBaseURL = "http://localhost:11434"
)

// Chatter wraps Ollama's chat API.
type Chatter struct {
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

// ChatterConfig holds configuration for the Ollama chatter.
type ChatterConfig struct {
	// BaseURL is the Ollama API URL (e.g., "http://localhost:11434").
	// Defaults to DefaultBaseURL if empty.
	BaseURL string

	// Model is the chat model to use. Defaults to DefaultChatModel if empty.
	Model string

	// Temperature controls sampling. Zero is passed through as-is.
	Temperature float64
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for Ollama's chat API.
type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

// chatResponse is the non-streaming response from Ollama's chat API.
type chatResponse struct {
	Message chatMessage `json:"message"`
}

// NewChatter creates a new chatter using Ollama's chat API.
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
		Stream: false,
	}
	if c.temperature > 0 {
		reqBody.Options = map[string]any{"temperature": c.temperature}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshaling request: %v", llm.ErrChat, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", llm.ErrChat, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: sending request: %v", llm.ErrChat, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: ollama returned status %d: %s", llm.ErrChat, resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", llm.ErrChat, err)
	}

	if chatResp.Message.Content == "" {
		return "", fmt.Errorf("%w: empty reply", llm.ErrChat)
	}

	return chatResp.Message.Content, nil
}

// Close releases resources held by the chatter.
func (c *Chatter) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

// Ensure Chatter implements llm.Chatter
var _ llm.Chatter = (*Chatter)(nil)
