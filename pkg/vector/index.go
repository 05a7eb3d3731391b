// Package vector provides an in-memory, read-only vector index for cosine
// similarity ranking.
//
// The index holds one row per document, pre-normalized at construction time.
// The corpus is small and static, so ranking is a linear scan of the matrix;
// no approximate index structure is used or required. After construction the
// index is never mutated and may be shared freely across goroutines.
package vector

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// normEpsilon guards against division by zero when a row is all zeros.
const normEpsilon = 1e-9

// ErrDimensionMismatch is returned when a query vector's length does not
// match the index dimensionality.
var ErrDimensionMismatch = errors.New("query dimension mismatch")

// Hit is a single ranked row with its cosine similarity score.
type Hit struct {
	// Row is the ordinal index of the matched vector.
	Row int

	// Score is the cosine similarity in [-1, 1]; higher is more similar.
	Score float32
}

// Index is a dense matrix of unit-normalized embedding vectors.
type Index struct {
	rows [][]float32
	dim  int
}

// NewIndex builds an index from raw embedding vectors. Each row is divided by
// its L2 norm (plus a small epsilon) so that ranking reduces to dot products.
// All rows must share the same dimensionality.
func NewIndex(vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return &Index{}, nil
	}

	dim := len(vectors[0])
	rows := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("row %d has %d dimensions, expected %d", i, len(v), dim)
		}
		rows[i] = normalize(v)
	}

	return &Index{rows: rows, dim: dim}, nil
}

// Len returns the number of rows in the index.
func (ix *Index) Len() int {
	return len(ix.rows)
}

// Dimensions returns the vector dimensionality, or 0 for an empty index.
func (ix *Index) Dimensions() int {
	return ix.dim
}

// Rank scores the query against every row and returns up to n hits in
// descending similarity order. The sort is stable, so equal scores keep
// their ordinal order.
func (ix *Index) Rank(query []float32, n int) ([]Hit, error) {
	if len(ix.rows) == 0 {
		return nil, nil
	}
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: got %d, index has %d", ErrDimensionMismatch, len(query), ix.dim)
	}

	q := normalize(query)

	hits := make([]Hit, len(ix.rows))
	for i, row := range ix.rows {
		hits[i] = Hit{Row: i, Score: dot(row, q)}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if n < len(hits) {
		hits = hits[:n]
	}
	return hits, nil
}

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum) + normEpsilon

	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
