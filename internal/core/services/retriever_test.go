package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs/askdocs-cli/internal/adapters/driven/storage/memory"
	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
)

// setupRetrieverStore seeds a document store with three single-chunk
// documents so vector hits can be resolved to content.
func setupRetrieverStore(t *testing.T) *memory.DocumentStore {
	t.Helper()
	store := memory.NewDocumentStore()
	ctx := context.Background()
	now := time.Now().UTC()

	docs := []struct {
		id      string
		content string
	}{
		{"doc-1", "Employees accrue twenty days of annual leave."},
		{"doc-2", "Expenses are reimbursed within thirty days."},
		{"doc-3", "The office is closed on public holidays."},
	}

	for _, d := range docs {
		doc := &domain.Document{
			ID:         d.id,
			Title:      d.id,
			Content:    d.content,
			ChunkCount: 1,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		chunk := domain.Chunk{
			ID:         "chunk-" + d.id,
			DocumentID: d.id,
			Content:    d.content,
			Index:      0,
		}
		require.NoError(t, store.SaveDocumentWithChunks(ctx, doc, []domain.Chunk{chunk}))
	}

	return store
}

func TestRetriever_Retrieve_FiltersByThreshold(t *testing.T) {
	store := setupRetrieverStore(t)
	index := newMockVectorIndex([]driven.VectorHit{
		{ChunkID: "chunk-doc-1", DocumentID: "doc-1", Similarity: 0.9},
		{ChunkID: "chunk-doc-2", DocumentID: "doc-2", Similarity: 0.5},
		{ChunkID: "chunk-doc-3", DocumentID: "doc-3", Similarity: 0.3},
	})
	embedder := &mockEmbedder{embedding: []float32{0.1, 0.2, 0.3, 0.4}}
	retriever := NewRetriever(embedder, index, store)

	results, err := retriever.Retrieve(context.Background(), "leave policy", 5, 0.4, "")

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "chunk-doc-1", results[0].ChunkID)
	assert.Equal(t, "chunk-doc-2", results[1].ChunkID)
}

func TestRetriever_Retrieve_OrdersByScoreThenChunkID(t *testing.T) {
	store := setupRetrieverStore(t)
	index := newMockVectorIndex([]driven.VectorHit{
		{ChunkID: "chunk-doc-3", DocumentID: "doc-3", Similarity: 0.8},
		{ChunkID: "chunk-doc-1", DocumentID: "doc-1", Similarity: 0.8},
		{ChunkID: "chunk-doc-2", DocumentID: "doc-2", Similarity: 0.9},
	})
	embedder := &mockEmbedder{embedding: []float32{0.1, 0.2, 0.3, 0.4}}
	retriever := NewRetriever(embedder, index, store)

	results, err := retriever.Retrieve(context.Background(), "anything", 5, 0.0, "")

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "chunk-doc-2", results[0].ChunkID)
	// Equal scores break ties on ascending chunk ID.
	assert.Equal(t, "chunk-doc-1", results[1].ChunkID)
	assert.Equal(t, "chunk-doc-3", results[2].ChunkID)
}

func TestRetriever_Retrieve_CapsAtTopK(t *testing.T) {
	store := setupRetrieverStore(t)
	index := newMockVectorIndex([]driven.VectorHit{
		{ChunkID: "chunk-doc-1", DocumentID: "doc-1", Similarity: 0.9},
		{ChunkID: "chunk-doc-2", DocumentID: "doc-2", Similarity: 0.8},
		{ChunkID: "chunk-doc-3", DocumentID: "doc-3", Similarity: 0.7},
	})
	embedder := &mockEmbedder{embedding: []float32{0.1, 0.2, 0.3, 0.4}}
	retriever := NewRetriever(embedder, index, store)

	results, err := retriever.Retrieve(context.Background(), "anything", 2, 0.0, "")

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "chunk-doc-1", results[0].ChunkID)
	assert.Equal(t, "chunk-doc-2", results[1].ChunkID)
}

func TestRetriever_Retrieve_OverfetchesIndex(t *testing.T) {
	store := setupRetrieverStore(t)
	index := newMockVectorIndex(nil)
	embedder := &mockEmbedder{embedding: []float32{0.1, 0.2, 0.3, 0.4}}
	retriever := NewRetriever(embedder, index, store)

	_, err := retriever.Retrieve(context.Background(), "anything", 5, 0.4, "")

	require.NoError(t, err)
	assert.Equal(t, 10, index.lastK)
}

func TestRetriever_Retrieve_EmptyResultIsNotAnError(t *testing.T) {
	store := setupRetrieverStore(t)
	index := newMockVectorIndex([]driven.VectorHit{
		{ChunkID: "chunk-doc-1", DocumentID: "doc-1", Similarity: 0.2},
	})
	embedder := &mockEmbedder{embedding: []float32{0.1, 0.2, 0.3, 0.4}}
	retriever := NewRetriever(embedder, index, store)

	results, err := retriever.Retrieve(context.Background(), "anything", 5, 0.4, "")

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetriever_Retrieve_SkipsDeletedChunks(t *testing.T) {
	store := setupRetrieverStore(t)
	index := newMockVectorIndex([]driven.VectorHit{
		{ChunkID: "chunk-gone", DocumentID: "doc-gone", Similarity: 0.95},
		{ChunkID: "chunk-doc-1", DocumentID: "doc-1", Similarity: 0.9},
	})
	embedder := &mockEmbedder{embedding: []float32{0.1, 0.2, 0.3, 0.4}}
	retriever := NewRetriever(embedder, index, store)

	results, err := retriever.Retrieve(context.Background(), "anything", 5, 0.4, "")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "chunk-doc-1", results[0].ChunkID)
}

func TestRetriever_Retrieve_PassesDocumentFilter(t *testing.T) {
	store := setupRetrieverStore(t)
	index := newMockVectorIndex(nil)
	embedder := &mockEmbedder{embedding: []float32{0.1, 0.2, 0.3, 0.4}}
	retriever := NewRetriever(embedder, index, store)

	_, err := retriever.Retrieve(context.Background(), "anything", 5, 0.4, "doc-2")

	require.NoError(t, err)
	require.NotNil(t, index.lastFilter)
	assert.Equal(t, "doc-2", index.lastFilter.DocumentID)
}

func TestRetriever_Retrieve_EmbedErrorSurfaces(t *testing.T) {
	store := setupRetrieverStore(t)
	index := newMockVectorIndex(nil)
	embedder := &mockEmbedder{embedErr: errors.New("provider down")}
	retriever := NewRetriever(embedder, index, store)

	_, err := retriever.Retrieve(context.Background(), "anything", 5, 0.4, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed query")
}

func TestRetriever_Retrieve_SearchErrorSurfaces(t *testing.T) {
	store := setupRetrieverStore(t)
	index := newMockVectorIndex(nil)
	index.searchErr = errors.New("index corrupt")
	embedder := &mockEmbedder{embedding: []float32{0.1, 0.2, 0.3, 0.4}}
	retriever := NewRetriever(embedder, index, store)

	_, err := retriever.Retrieve(context.Background(), "anything", 5, 0.4, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "vector search")
}

func TestRetriever_Retrieve_NilEmbedder(t *testing.T) {
	retriever := NewRetriever(nil, newMockVectorIndex(nil), memory.NewDocumentStore())

	_, err := retriever.Retrieve(context.Background(), "anything", 5, 0.4, "")

	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}
