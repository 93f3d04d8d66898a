package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs/askdocs-cli/internal/logger"
)

// overfetchFactor is how many extra candidates to request from the index
// so that threshold filtering does not under-fill the result set.
const overfetchFactor = 2

// Retriever turns a query string into a ranked, thresholded list of
// relevant chunks. It embeds the query, searches the vector index for
// nearest neighbours, and filters by similarity threshold afterwards.
// Retrieval recall and precision policy stay decoupled: the threshold can
// be tuned without reindexing.
type Retriever struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	docStore driven.DocumentStore
}

// NewRetriever creates a retriever over the given collaborators.
func NewRetriever(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	docStore driven.DocumentStore,
) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
		docStore: docStore,
	}
}

// Retrieve returns at most topK chunks with score >= threshold, ordered by
// descending score with ascending chunk ID as the tie-break. An empty
// result is a valid outcome, not an error.
func (r *Retriever) Retrieve(
	ctx context.Context, query string, topK int, threshold float64, documentID string,
) ([]domain.RetrievedChunk, error) {
	if r.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if r.index == nil {
		return nil, fmt.Errorf("%w: vector index not configured", domain.ErrStorageUnavailable)
	}

	logger.Debug("Retrieve: query=%q, top_k=%d, threshold=%.2f", query, topK, threshold)

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	var filter *driven.VectorFilter
	if documentID != "" {
		filter = &driven.VectorFilter{DocumentID: documentID}
		logger.Debug("Document filter: %s", documentID)
	}

	hits, err := r.index.Search(ctx, embedding, topK*overfetchFactor, filter)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	logger.Debug("Vector search: %d hits", len(hits))

	results := make([]domain.RetrievedChunk, 0, topK)
	for _, hit := range hits {
		if hit.Similarity < threshold {
			continue
		}

		chunk, err := r.docStore.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Chunk was deleted since indexing, skip it.
				continue
			}
			return nil, fmt.Errorf("get chunk %s: %w", hit.ChunkID, err)
		}

		results = append(results, domain.RetrievedChunk{
			ChunkID:    chunk.ID,
			DocumentID: chunk.DocumentID,
			Content:    chunk.Content,
			Index:      chunk.Index,
			Score:      hit.Similarity,
			Metadata:   chunk.Metadata,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ChunkID < results[j].ChunkID
	})

	if len(results) > topK {
		results = results[:topK]
	}

	logger.Debug("Retrieve: %d chunks above threshold", len(results))
	return results, nil
}
