// Package llm defines the chat completion interface the assistant speaks
// through, with provider clients in subpackages.
package llm

import (
	"context"
	"errors"
)

// ErrChat is the base error for chat completion failures.
var ErrChat = errors.New("chat completion error")

// ErrorResponse is the JSON error body returned by HTTP surfaces.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Chatter produces a single assistant reply for a system prompt and a user
// message. Implementations are non-streaming.
type Chatter interface {
	// Chat returns the assistant's reply text.
	Chat(ctx context.Context, system, user string) (string, error)

	// Close releases resources held by the chatter.
	Close() error
}
