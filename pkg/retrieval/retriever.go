// Package retrieval implements the query-time retrieval pipeline: embed the
// query, rank the document store by cosine similarity, re-rank the candidate
// pool by event recency, and render the winners into a context block.
package retrieval

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ncuacg/assistant/pkg/embeddings"
	"github.com/ncuacg/assistant/pkg/notice"
)

const (
	// DefaultTopK is the number of documents returned per query.
	DefaultTopK = 4

	// DefaultPoolFactor over-fetches similarity candidates so the temporal
	// filter has enough to work with after it drops out-of-window documents.
	DefaultPoolFactor = 4

	// DefaultWindowDays bounds the future event window.
	DefaultWindowDays = 30
)

// Options tunes the retrieval pipeline. Zero values fall back to defaults.
type Options struct {
	TopK       int
	PoolFactor int
	WindowDays int

	// Now overrides the clock, for tests.
	Now func() time.Time

	// DisplayZone is the timezone used when rendering event times into the
	// context block. Defaults to DefaultDisplayZone.
	DisplayZone *time.Location
}

// Retriever ties the embedder and document store together. The store is
// read-only, so a single Retriever is safe for concurrent requests; the only
// blocking point is the embedding call, which honors ctx cancellation.
type Retriever struct {
	store    *notice.Store
	embedder embeddings.Embedder
	opts     Options
	logger   *zap.Logger
}

// NewRetriever creates a retriever over the given store and embedder.
func NewRetriever(store *notice.Store, embedder embeddings.Embedder, opts Options, logger *zap.Logger) *Retriever {
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	if opts.PoolFactor <= 0 {
		opts.PoolFactor = DefaultPoolFactor
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = DefaultWindowDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DisplayZone == nil {
		opts.DisplayZone = DefaultDisplayZone
	}

	return &Retriever{
		store:    store,
		embedder: embedder,
		opts:     opts,
		logger:   logger,
	}
}

// rank embeds the query and runs the similarity and temporal passes.
func (r *Retriever) rank(ctx context.Context, query string, k int) ([]Ranked, error) {
	if k <= 0 {
		k = r.opts.TopK
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	poolSize := max(k*r.opts.PoolFactor, k)
	candidates, err := r.store.Rank(queryVec, poolSize)
	if err != nil {
		return nil, err
	}

	now := r.opts.Now().UTC()
	window := time.Duration(r.opts.WindowDays) * 24 * time.Hour
	ranked := Rerank(candidates, now, window, k)

	r.logger.Debug("ranked retrieval candidates",
		zap.Int("pool", len(candidates)),
		zap.Int("returned", len(ranked)),
		zap.Int("k", k),
	)

	return ranked, nil
}

// TopK returns the top-k documents for the query, future-relevant events
// first when any exist.
func (r *Retriever) TopK(ctx context.Context, query string, k int) ([]notice.Document, error) {
	ranked, err := r.rank(ctx, query, k)
	if err != nil {
		return nil, err
	}

	docs := make([]notice.Document, len(ranked))
	for i, rr := range ranked {
		docs[i] = rr.Doc
	}
	return docs, nil
}

// RetrieveContext returns the assembled context block for the query,
// suitable for direct prompt injection. k <= 0 uses the configured TopK.
func (r *Retriever) RetrieveContext(ctx context.Context, query string, k int) (string, error) {
	ranked, err := r.rank(ctx, query, k)
	if err != nil {
		return "", err
	}
	return Assemble(ranked, r.opts.DisplayZone), nil
}
