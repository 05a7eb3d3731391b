// Package llmutils is the llm utility package
package llmutils

import (
	"fmt"

	"github.com/ncuacg/assistant/pkg/llm"
	"github.com/ncuacg/assistant/pkg/llm/ollama"
	"github.com/ncuacg/assistant/pkg/llm/openai"
)

type NewChatterOpts struct {
	ProviderType string
	TargetURL    string
	Model        string
	APIKey       string
	Temperature  float64
}

func NewChatter(o *NewChatterOpts) (llm.Chatter, error) {
	switch o.ProviderType {
	case "ollama":
		return ollama.NewChatter(ollama.ChatterConfig{
			BaseURL:     o.TargetURL,
			Model:       o.Model,
			Temperature: o.Temperature,
		})
	case "openai", "groq":
		return openai.NewChatter(openai.ChatterConfig{
			BaseURL:     o.TargetURL,
			Model:       o.Model,
			APIKey:      o.APIKey,
			Temperature: o.Temperature,
		})
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", o.ProviderType)
	}
}
