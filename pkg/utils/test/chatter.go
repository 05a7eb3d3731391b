package testutils

import (
	"context"
	"fmt"
)

// MockChatter is a test LLM client that records the prompts it was given.
type MockChatter struct {
	// Reply is returned for every call.
	Reply string

	// Fail causes Chat to return an error.
	Fail bool

	LastSystem string
	LastUser   string
}

func NewMockChatter(reply string) *MockChatter {
	return &MockChatter{Reply: reply}
}

func (m *MockChatter) Chat(_ context.Context, system, user string) (string, error) {
	if m.Fail {
		return "", fmt.Errorf("mock chat failure")
	}
	m.LastSystem = system
	m.LastUser = user
	return m.Reply, nil
}

func (m *MockChatter) Close() error {
	return nil
}
