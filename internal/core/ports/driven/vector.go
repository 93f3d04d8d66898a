package driven

import "context"

// VectorIndex provides cosine similarity search over chunk embeddings.
//
// The metric is fixed per deployment by construction: implementations
// normalise vectors at insert time and score with a dot product, so
// writes and reads cannot disagree on the metric.
type VectorIndex interface {
	// Upsert stores or replaces the embedding for the given chunk ID.
	Upsert(ctx context.Context, chunkID string, embedding []float32, meta VectorMeta) error

	// Delete removes a vector from the index.
	Delete(ctx context.Context, chunkID string) error

	// DeleteByDocument removes all vectors belonging to a document.
	DeleteByDocument(ctx context.Context, documentID string) error

	// Search finds the k nearest neighbours to the query vector, ordered
	// by descending similarity. A nil filter searches the whole index.
	Search(ctx context.Context, query []float32, k int, filter *VectorFilter) ([]VectorHit, error)

	// Close releases resources.
	Close() error
}

// VectorMeta carries the identifying metadata stored alongside a vector.
type VectorMeta struct {
	// DocumentID is the chunk's parent document, used for scoped search
	// and cascade deletes.
	DocumentID string
}

// VectorFilter restricts a search to a subset of the index.
type VectorFilter struct {
	// DocumentID limits results to chunks of a single document.
	DocumentID string
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// DocumentID is the matched chunk's parent document.
	DocumentID string

	// Similarity is the cosine similarity score (0-1).
	Similarity float64
}
