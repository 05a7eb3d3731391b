package embeddings

import "context"

// prefixEmbedder prepends a fixed prefix to every input before embedding.
//
// E5-family models embed queries and passages asymmetrically: queries are
// prefixed "query: " and passages "passage: ". The snapshot is built with the
// passage prefix, so runtime queries must carry the query prefix or the two
// sides of a retrieval pair stop being comparable.
type prefixEmbedder struct {
	inner  Embedder
	prefix string
}

// WithPrefix wraps an embedder so every input is prefixed with the given
// string. An empty prefix returns the embedder unchanged.
func WithPrefix(inner Embedder, prefix string) Embedder {
	if prefix == "" {
		return inner
	}
	return &prefixEmbedder{inner: inner, prefix: prefix}
}

func (p *prefixEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return p.inner.Embed(ctx, p.prefix+text)
}

func (p *prefixEmbedder) Close() error {
	return p.inner.Close()
}
