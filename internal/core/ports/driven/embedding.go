package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The contract is strict: EmbedBatch returns exactly one vector per input
// string, in input order. An unreachable provider or a rejected input is an
// error; implementations must never substitute a zero vector or skip an
// item, since that would corrupt alignment with chunk indices.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	// Output length equals input length and output[i] corresponds to
	// texts[i].
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1536).
	// This must match the VectorIndex configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
