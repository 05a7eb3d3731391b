package notice

import (
	"fmt"

	"github.com/ncuacg/assistant/pkg/vector"
)

// Candidate is a document with its similarity score from a ranking pass.
type Candidate struct {
	Doc   Document
	Row   int
	Score float32
}

// Store is the immutable document store: documents plus the pre-normalized
// vector index over them. Safe for concurrent use without locking.
type Store struct {
	docs  []Document
	index *vector.Index
}

// NewStore builds a store from a snapshot. The snapshot's vectors and
// documents must be ordinal-aligned.
func NewStore(snap *Snapshot) (*Store, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil snapshot")
	}
	if len(snap.Vectors) != len(snap.Documents) {
		return nil, fmt.Errorf("snapshot misaligned: %d vectors, %d documents",
			len(snap.Vectors), len(snap.Documents))
	}

	index, err := vector.NewIndex(snap.Vectors)
	if err != nil {
		return nil, fmt.Errorf("building vector index: %w", err)
	}

	return &Store{
		docs:  snap.Documents,
		index: index,
	}, nil
}

// LoadStore reads a snapshot from disk and builds the store. Any error is a
// startup failure: the process cannot serve retrieval without a valid store.
func LoadStore(path string) (*Store, error) {
	snap, err := ReadSnapshot(path)
	if err != nil {
		return nil, err
	}
	return NewStore(snap)
}

// Len returns the number of documents in the store.
func (s *Store) Len() int {
	return len(s.docs)
}

// Dimensions returns the embedding dimensionality of the index.
func (s *Store) Dimensions() int {
	return s.index.Dimensions()
}

// Document returns the document at the given row.
func (s *Store) Document(row int) Document {
	return s.docs[row]
}

// Rank scores the query vector against the whole corpus and returns up to
// poolSize candidates in descending similarity order.
func (s *Store) Rank(queryVec []float32, poolSize int) ([]Candidate, error) {
	hits, err := s.index.Rank(queryVec, poolSize)
	if err != nil {
		return nil, fmt.Errorf("ranking query: %w", err)
	}

	candidates := make([]Candidate, len(hits))
	for i, h := range hits {
		candidates[i] = Candidate{
			Doc:   s.docs[h.Row],
			Row:   h.Row,
			Score: h.Score,
		}
	}
	return candidates, nil
}
