// Package memory provides an in-process vector index using brute-force
// cosine similarity. Vectors are normalised at insert time so every
// search reduces to dot products; the metric cannot drift between writes
// and reads. The index is rebuilt from the document store at startup.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry is one stored vector with its metadata.
type entry struct {
	documentID string
	vector     []float32
}

// Index is a thread-safe brute-force cosine similarity index.
type Index struct {
	mu        sync.RWMutex
	dimension int
	entries   map[string]entry
}

// NewIndex creates an index for vectors of the given dimensionality.
func NewIndex(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("%w: vector dimension must be positive, got %d",
			domain.ErrInvalidConfig, dimension)
	}
	return &Index{
		dimension: dimension,
		entries:   make(map[string]entry),
	}, nil
}

// Upsert stores or replaces the embedding for the given chunk ID.
// The vector is normalised to unit length before storage.
func (idx *Index) Upsert(_ context.Context, chunkID string, embedding []float32, meta driven.VectorMeta) error {
	if len(embedding) != idx.dimension {
		return fmt.Errorf("%w: got %d, index expects %d",
			domain.ErrDimensionMismatch, len(embedding), idx.dimension)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries[chunkID] = entry{
		documentID: meta.DocumentID,
		vector:     normalise(embedding),
	}
	return nil
}

// Delete removes a vector from the index.
func (idx *Index) Delete(_ context.Context, chunkID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.entries, chunkID)
	return nil
}

// DeleteByDocument removes all vectors belonging to a document.
func (idx *Index) DeleteByDocument(_ context.Context, documentID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for id, e := range idx.entries {
		if e.documentID == documentID {
			delete(idx.entries, id)
		}
	}
	return nil
}

// Search finds the k nearest neighbours to the query vector, ordered by
// descending cosine similarity. Similarities are clamped to [0,1].
func (idx *Index) Search(
	_ context.Context, query []float32, k int, filter *driven.VectorFilter,
) ([]driven.VectorHit, error) {
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("%w: query has %d, index expects %d",
			domain.ErrDimensionMismatch, len(query), idx.dimension)
	}
	if k <= 0 {
		return nil, nil
	}

	q := normalise(query)

	idx.mu.RLock()
	hits := make([]driven.VectorHit, 0, len(idx.entries))
	for id, e := range idx.entries {
		if filter != nil && filter.DocumentID != "" && e.documentID != filter.DocumentID {
			continue
		}
		hits = append(hits, driven.VectorHit{
			ChunkID:    id,
			DocumentID: e.documentID,
			Similarity: clamp01(dot(q, e.vector)),
		})
	}
	idx.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of stored vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Close releases resources.
func (idx *Index) Close() error {
	return nil
}

// normalise returns a unit-length copy of v. A zero vector is returned
// unchanged; its similarity to anything is zero.
func normalise(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		out := make([]float32, len(v))
		copy(out, v)
		return out
	}

	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// clamp01 bounds a similarity to [0,1]. Floating point noise can push a
// cosine of identical vectors fractionally past 1.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
