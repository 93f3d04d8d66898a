// Package chunker provides fixed-size text chunking with overlap.
package chunker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Chunker splits document content into fixed-size overlapping chunks.
// Chunking is deterministic: identical content and parameters always
// produce identical chunk boundaries.
type Chunker struct {
	chunkSize int
	overlap   int
}

// New creates a chunker. It rejects overlap >= size, which would make the
// window degenerate (the cursor could never advance).
func New(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d",
			domain.ErrInvalidConfig, chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap must not be negative, got %d",
			domain.ErrInvalidConfig, overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("%w: chunk overlap %d must be less than chunk size %d",
			domain.ErrInvalidConfig, overlap, chunkSize)
	}

	return &Chunker{
		chunkSize: chunkSize,
		overlap:   overlap,
	}, nil
}

// Split divides the document content into chunks with sequential indices.
// The window advances by (size - overlap) per step. The final chunk may be
// shorter than the chunk size and is always emitted. Empty content
// produces no chunks.
func (c *Chunker) Split(doc *domain.Document) []domain.Chunk {
	if doc.Content == "" {
		return nil
	}

	content := doc.Content
	contentLen := len(content)
	step := c.chunkSize - c.overlap

	estimated := contentLen/step + 1
	chunks := make([]domain.Chunk, 0, estimated)

	index := 0
	for start := 0; start < contentLen; start += step {
		end := start + c.chunkSize
		if end > contentLen {
			end = contentLen
		}

		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    content[start:end],
			Index:      index,
			Metadata:   make(map[string]any),
		})
		index++

		// The last window reached the end of the content.
		if end == contentLen {
			break
		}
	}

	return chunks
}

// ChunkSize returns the configured chunk size.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}
