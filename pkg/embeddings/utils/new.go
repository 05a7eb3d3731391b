// Package embeddingutils is the embeddings utility package
package embeddingutils

import (
	"fmt"

	"github.com/ncuacg/assistant/pkg/embeddings"
	"github.com/ncuacg/assistant/pkg/embeddings/ollama"
	"github.com/ncuacg/assistant/pkg/embeddings/openai"
)

type NewEmbedderOpts struct {
	ProviderType string
	TargetURL    string
	Model        string
	APIKey       string

	// Prefix is prepended to every input. Used for the asymmetric
	// query/passage conventions of E5-style models.
	Prefix string
}

func NewEmbedder(o *NewEmbedderOpts) (embeddings.Embedder, error) {
	var (
		e   embeddings.Embedder
		err error
	)

	switch o.ProviderType {
	case "ollama":
		e, err = ollama.NewEmbedder(ollama.EmbedderConfig{
			BaseURL: o.TargetURL,
			Model:   o.Model,
		})
	case "openai":
		e, err = openai.NewEmbedder(openai.EmbedderConfig{
			BaseURL: o.TargetURL,
			Model:   o.Model,
			APIKey:  o.APIKey,
		})
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", o.ProviderType)
	}
	if err != nil {
		return nil, err
	}

	return embeddings.WithPrefix(e, o.Prefix), nil
}
