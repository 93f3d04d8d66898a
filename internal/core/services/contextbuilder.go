package services

import (
	"fmt"
	"strings"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/logger"
)

// chunkSeparator divides source blocks in the assembled context.
const chunkSeparator = "\n\n---\n\n"

// ContextBuilder assembles retrieved chunks into a bounded prompt context.
// Chunks are consumed in the order given (descending score). A chunk that
// would push the context past the budget is skipped whole rather than
// truncated, and iteration continues in case a smaller chunk still fits.
type ContextBuilder struct {
	budget int
}

// NewContextBuilder creates a builder with the given character budget.
func NewContextBuilder(budget int) *ContextBuilder {
	return &ContextBuilder{budget: budget}
}

// Build returns the assembled context string and the subsequence of chunks
// actually included, in inclusion order. Each included chunk is tagged
// with its source identity so generated answers can be cross-checked
// against the citations.
func (b *ContextBuilder) Build(chunks []domain.RetrievedChunk) (string, []domain.RetrievedChunk) {
	var sb strings.Builder
	included := make([]domain.RetrievedChunk, 0, len(chunks))

	for _, chunk := range chunks {
		block := fmt.Sprintf("[Source %d: document=%s chunk=%s]\n%s",
			len(included)+1, chunk.DocumentID, chunk.ChunkID, chunk.Content)

		cost := len(block)
		if sb.Len() > 0 {
			cost += len(chunkSeparator)
		}

		if sb.Len()+cost > b.budget {
			logger.Debug("Context budget: skipping chunk %s (%d chars would exceed %d)",
				chunk.ChunkID, cost, b.budget)
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString(chunkSeparator)
		}
		sb.WriteString(block)
		included = append(included, chunk)
	}

	logger.Debug("Context: %d of %d chunks included, %d chars",
		len(included), len(chunks), sb.Len())
	return sb.String(), included
}
