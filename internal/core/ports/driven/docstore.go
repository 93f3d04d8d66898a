package driven

import (
	"context"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

// DocumentStore persists documents and chunks.
// Backed by SQLite.
type DocumentStore interface {
	// SaveDocumentWithChunks stores a document and its full chunk set
	// atomically. Readers never observe a partial chunk set.
	SaveDocumentWithChunks(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document, ordered by index.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// AllChunks returns every stored chunk. Used to rebuild the vector
	// index at startup.
	AllChunks(ctx context.Context) ([]domain.Chunk, error)

	// DeleteDocument removes a document and cascades to its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns all documents, newest first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}
