package notice

import (
	"encoding/gob"
	"fmt"
	"os"
	"time"
)

// DefaultSnapshotFile is the snapshot filename inside the .assistant/
// directory when no explicit path is configured.
const DefaultSnapshotFile = "snapshot.gob"

// Snapshot is the serialized form of the knowledge base: an embedding matrix
// and the parallel list of documents, ordinal-aligned.
type Snapshot struct {
	Vectors   [][]float32
	Documents []Document
}

func init() {
	// Meta is a map[string]any; gob needs the concrete types that may
	// appear in it registered up front.
	gob.Register(time.Time{})
	gob.Register(map[string]any{})
	gob.Register([]any{})
}

// ReadSnapshot loads a snapshot blob from disk. A missing or malformed file
// is a startup precondition failure for retrieval, so the caller should treat
// any error here as fatal.
func ReadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer f.Close()

	snap := &Snapshot{}
	if err := gob.NewDecoder(f).Decode(snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}

	return snap, nil
}

// WriteSnapshot persists a snapshot blob to disk. Used by the offline seed
// step only; the serving process never writes.
func WriteSnapshot(path string, snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("cannot write nil snapshot")
	}
	if len(snap.Vectors) != len(snap.Documents) {
		return fmt.Errorf("snapshot misaligned: %d vectors, %d documents",
			len(snap.Vectors), len(snap.Documents))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(snap); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	return f.Sync()
}
