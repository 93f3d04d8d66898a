package driving

import (
	"context"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

// QueryService answers questions over the ingested documents.
type QueryService interface {
	// Query runs the full retrieve-then-generate pipeline and returns the
	// answer with source citations.
	Query(ctx context.Context, query string, opts domain.QueryOptions) (*domain.QueryResult, error)
}
