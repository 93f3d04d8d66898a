package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testDocument(id string) (*domain.Document, []domain.Chunk) {
	now := time.Now().UTC().Truncate(time.Second)
	doc := &domain.Document{
		ID:         id,
		Title:      "Test Document",
		Content:    "The sky is blue. Grass is green.",
		Metadata:   map[string]any{"source": "test"},
		ChunkCount: 2,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	chunks := []domain.Chunk{
		{
			ID:         id + "-c0",
			DocumentID: id,
			Content:    "The sky is blue.",
			Index:      0,
			Embedding:  []float32{0.1, 0.2, 0.3},
			Metadata:   map[string]any{},
		},
		{
			ID:         id + "-c1",
			DocumentID: id,
			Content:    "Grass is green.",
			Index:      1,
			Embedding:  []float32{0.4, 0.5, 0.6},
			Metadata:   map[string]any{},
		},
	}
	return doc, chunks
}

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	doc, chunks := testDocument("doc-1")
	require.NoError(t, docs.SaveDocumentWithChunks(ctx, doc, chunks))

	got, err := docs.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.Content, got.Content)
	assert.Equal(t, 2, got.ChunkCount)
	assert.Equal(t, "test", got.Metadata["source"])
}

func TestDocumentStore_GetDocument_NotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.DocumentStore().GetDocument(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDocumentStore_Chunks(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	doc, chunks := testDocument("doc-1")
	require.NoError(t, docs.SaveDocumentWithChunks(ctx, doc, chunks))

	t.Run("get chunks ordered by index", func(t *testing.T) {
		got, err := docs.GetChunks(ctx, "doc-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 0, got[0].Index)
		assert.Equal(t, 1, got[1].Index)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, got[0].Embedding)
	})

	t.Run("get single chunk", func(t *testing.T) {
		chunk, err := docs.GetChunk(ctx, "doc-1-c1")
		require.NoError(t, err)
		assert.Equal(t, "Grass is green.", chunk.Content)
		assert.Equal(t, []float32{0.4, 0.5, 0.6}, chunk.Embedding)
	})

	t.Run("missing chunk", func(t *testing.T) {
		_, err := docs.GetChunk(ctx, "nope")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestDocumentStore_ReingestReplacesChunks(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	doc, chunks := testDocument("doc-1")
	require.NoError(t, docs.SaveDocumentWithChunks(ctx, doc, chunks))

	// Save again with a single chunk; the old set must be fully replaced.
	doc.ChunkCount = 1
	require.NoError(t, docs.SaveDocumentWithChunks(ctx, doc, chunks[:1]))

	got, err := docs.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDocumentStore_DeleteCascades(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	doc, chunks := testDocument("doc-1")
	require.NoError(t, docs.SaveDocumentWithChunks(ctx, doc, chunks))
	require.NoError(t, docs.DeleteDocument(ctx, "doc-1"))

	_, err := docs.GetDocument(ctx, "doc-1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	got, err := docs.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDocumentStore_AllChunks(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	docA, chunksA := testDocument("doc-a")
	docB, chunksB := testDocument("doc-b")
	require.NoError(t, docs.SaveDocumentWithChunks(ctx, docA, chunksA))
	require.NoError(t, docs.SaveDocumentWithChunks(ctx, docB, chunksB))

	all, err := docs.AllChunks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestDocumentStore_ListDocuments(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	docA, chunksA := testDocument("doc-a")
	docA.CreatedAt = docA.CreatedAt.Add(-time.Hour)
	docB, chunksB := testDocument("doc-b")
	require.NoError(t, docs.SaveDocumentWithChunks(ctx, docA, chunksA))
	require.NoError(t, docs.SaveDocumentWithChunks(ctx, docB, chunksB))

	list, err := docs.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "doc-b", list[0].ID)
	assert.Equal(t, "doc-a", list[1].ID)
}

func TestConversationStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	convs := store.ConversationStore()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	conv := &domain.Conversation{
		ID:        "conv-1",
		Title:     "New Conversation",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, convs.SaveConversation(ctx, conv))

	messages := []domain.Message{
		{
			ID:             "msg-1",
			ConversationID: "conv-1",
			Role:           domain.RoleUser,
			Content:        "What color is the sky?",
			Metadata:       map[string]any{},
			CreatedAt:      now,
		},
		{
			ID:             "msg-2",
			ConversationID: "conv-1",
			Role:           domain.RoleAssistant,
			Content:        "The sky is blue.",
			Metadata:       map[string]any{"model": "gpt-5-nano", "total_tokens": float64(42)},
			CreatedAt:      now.Add(time.Second),
		},
	}
	require.NoError(t, convs.SaveMessages(ctx, messages))

	got, err := convs.GetMessages(ctx, "conv-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.RoleUser, got[0].Role)
	assert.Equal(t, domain.RoleAssistant, got[1].Role)
	assert.Equal(t, "gpt-5-nano", got[1].Metadata["model"])

	t.Run("delete cascades to messages", func(t *testing.T) {
		require.NoError(t, convs.DeleteConversation(ctx, "conv-1"))

		_, err := convs.GetConversation(ctx, "conv-1")
		assert.True(t, errors.Is(err, domain.ErrNotFound))

		msgs, err := convs.GetMessages(ctx, "conv-1")
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})
}

func TestEmbeddingBlobRoundTrip(t *testing.T) {
	in := []float32{0.25, -1.5, 3.14159, 0}
	out := bytesToFloat32Slice(float32SliceToBytes(in))
	assert.Equal(t, in, out)

	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
