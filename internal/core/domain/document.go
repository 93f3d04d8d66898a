package domain

import "time"

// Document represents a piece of source material in the knowledge base.
// It is immutable after ingestion except for metadata edits.
type Document struct {
	// ID is the unique identifier for the document.
	ID string `json:"id"`

	// Title is the human-readable title.
	Title string `json:"title"`

	// Content is the full raw text content before chunking.
	Content string `json:"content"`

	// Metadata contains arbitrary JSON-compatible key-value pairs.
	Metadata map[string]any `json:"metadata,omitempty"`

	// ChunkCount is the number of chunks produced at ingestion.
	ChunkCount int `json:"chunk_count"`

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// Chunk is an independently embedded segment of a document.
// A document owns its chunks; deleting the document deletes them.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string `json:"id"`

	// DocumentID links to the parent Document.
	DocumentID string `json:"document_id"`

	// Content is the text content of this chunk.
	Content string `json:"content"`

	// Index is the zero-based ordinal position within the document.
	// Indices are unique and contiguous per document.
	Index int `json:"chunk_index"`

	// Embedding is the vector representation for similarity search.
	// Its length must match the configured embedding dimension.
	Embedding []float32 `json:"-"`

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RetrievedChunk is a read-only projection of a Chunk plus its similarity
// to a query. It exists only for the duration of one query and is never
// persisted.
type RetrievedChunk struct {
	// ChunkID is the identifier of the underlying chunk.
	ChunkID string `json:"chunk_id"`

	// DocumentID is the identifier of the chunk's parent document.
	DocumentID string `json:"document_id"`

	// Content is the chunk text.
	Content string `json:"content"`

	// Index is the chunk's position within its document.
	Index int `json:"chunk_index"`

	// Score is the cosine similarity to the query embedding, in [0,1].
	Score float64 `json:"score"`

	// Metadata is the chunk metadata.
	Metadata map[string]any `json:"metadata,omitempty"`
}
