package driving

import (
	"context"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

// IngestRequest is the input to document ingestion.
type IngestRequest struct {
	// Title is the document title.
	Title string

	// Content is the raw document text.
	Content string

	// Metadata is an optional free-form metadata map.
	Metadata map[string]any
}

// DocumentService manages the document lifecycle.
type DocumentService interface {
	// Ingest chunks, embeds, and persists a document. Returns the created
	// document with its chunk count.
	Ingest(ctx context.Context, req IngestRequest) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document, its chunks, and its vectors.
	Delete(ctx context.Context, id string) error
}
