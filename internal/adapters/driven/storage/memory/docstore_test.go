package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

func testDocument(id string, createdAt time.Time) *domain.Document {
	return &domain.Document{
		ID:         id,
		Title:      "Title " + id,
		Content:    "Content for " + id,
		ChunkCount: 2,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func testChunks(docID string) []domain.Chunk {
	return []domain.Chunk{
		{ID: docID + "-c0", DocumentID: docID, Content: "first", Index: 0},
		{ID: docID + "-c1", DocumentID: docID, Content: "second", Index: 1},
	}
}

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	doc := testDocument("doc-1", time.Now().UTC())

	require.NoError(t, store.SaveDocumentWithChunks(ctx, doc, testChunks("doc-1")))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Title doc-1", got.Title)
	assert.Equal(t, 2, got.ChunkCount)
}

func TestDocumentStore_GetDocument_NotFound(t *testing.T) {
	store := NewDocumentStore()

	_, err := store.GetDocument(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_GetChunks_OrderedByIndex(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	doc := testDocument("doc-1", time.Now().UTC())

	// Insert out of order, expect index order back.
	chunks := testChunks("doc-1")
	chunks[0], chunks[1] = chunks[1], chunks[0]
	require.NoError(t, store.SaveDocumentWithChunks(ctx, doc, chunks))

	got, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, 1, got[1].Index)
}

func TestDocumentStore_GetChunk(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.SaveDocumentWithChunks(ctx, testDocument("doc-1", time.Now().UTC()), testChunks("doc-1")))

	chunk, err := store.GetChunk(ctx, "doc-1-c1")
	require.NoError(t, err)
	assert.Equal(t, "second", chunk.Content)

	_, err = store.GetChunk(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_AllChunks(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, store.SaveDocumentWithChunks(ctx, testDocument("doc-1", now), testChunks("doc-1")))
	require.NoError(t, store.SaveDocumentWithChunks(ctx, testDocument("doc-2", now), testChunks("doc-2")))

	chunks, err := store.AllChunks(ctx)
	require.NoError(t, err)
	assert.Len(t, chunks, 4)
}

func TestDocumentStore_DeleteDocument_CascadesToChunks(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.SaveDocumentWithChunks(ctx, testDocument("doc-1", time.Now().UTC()), testChunks("doc-1")))

	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	_, err := store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	chunks, err := store.AllChunks(ctx)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestDocumentStore_ListDocuments_NewestFirst(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, store.SaveDocumentWithChunks(ctx, testDocument("doc-old", now.Add(-time.Hour)), nil))
	require.NoError(t, store.SaveDocumentWithChunks(ctx, testDocument("doc-new", now), nil))

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-new", docs[0].ID)
	assert.Equal(t, "doc-old", docs[1].ID)
}

func TestDocumentStore_SaveDocumentWithChunks_ReplacesChunkSet(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	doc := testDocument("doc-1", time.Now().UTC())
	require.NoError(t, store.SaveDocumentWithChunks(ctx, doc, testChunks("doc-1")))

	replacement := []domain.Chunk{
		{ID: "doc-1-r0", DocumentID: "doc-1", Content: "replacement", Index: 0},
	}
	require.NoError(t, store.SaveDocumentWithChunks(ctx, doc, replacement))

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "doc-1-r0", chunks[0].ID)
}
