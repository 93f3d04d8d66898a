package domain

import "fmt"

// AIProvider identifies an external AI service provider.
type AIProvider string

// Supported providers.
const (
	ProviderOpenAI    AIProvider = "openai"
	ProviderAnthropic AIProvider = "anthropic"
	ProviderOllama    AIProvider = "ollama"
)

// IsValid reports whether the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case ProviderOpenAI, ProviderAnthropic, ProviderOllama:
		return true
	}
	return false
}

// RequiresAPIKey reports whether the provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == ProviderOpenAI || p == ProviderAnthropic
}

// String returns the provider name.
func (p AIProvider) String() string {
	return string(p)
}

// Default pipeline tuning values.
const (
	DefaultChunkSize           = 1000
	DefaultChunkOverlap        = 200
	DefaultTopK                = 5
	DefaultSimilarityThreshold = 0.4
	DefaultContextBudget       = 6000
	DefaultEmbeddingDimension  = 1536
	DefaultMaxOutputTokens     = 2048
	DefaultTemperature         = 0.0
)

// RAGSettings holds the immutable tuning values for the RAG pipeline.
// Settings are validated once at the boundary; components receive them
// at construction and never re-validate per call.
type RAGSettings struct {
	// ChunkSize is the target chunk length in characters.
	ChunkSize int

	// ChunkOverlap is the overlap between consecutive chunks in characters.
	// Must be strictly less than ChunkSize.
	ChunkOverlap int

	// TopK is the default maximum number of chunks retrieved per query.
	TopK int

	// SimilarityThreshold is the default minimum similarity score.
	SimilarityThreshold float64

	// ContextBudget is the maximum assembled context length in characters.
	ContextBudget int

	// EmbeddingDimension is the fixed vector size for the whole index.
	EmbeddingDimension int

	// MaxOutputTokens caps the generated answer length.
	MaxOutputTokens int

	// Temperature is the generation temperature, where the model
	// supports overriding it.
	Temperature float64
}

// DefaultRAGSettings returns settings with production defaults.
func DefaultRAGSettings() RAGSettings {
	return RAGSettings{
		ChunkSize:           DefaultChunkSize,
		ChunkOverlap:        DefaultChunkOverlap,
		TopK:                DefaultTopK,
		SimilarityThreshold: DefaultSimilarityThreshold,
		ContextBudget:       DefaultContextBudget,
		EmbeddingDimension:  DefaultEmbeddingDimension,
		MaxOutputTokens:     DefaultMaxOutputTokens,
		Temperature:         DefaultTemperature,
	}
}

// Validate checks all settings invariants. It returns an error wrapping
// ErrInvalidConfig describing the first violation found.
func (s RAGSettings) Validate() error {
	if s.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, s.ChunkSize)
	}
	if s.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap must not be negative, got %d", ErrInvalidConfig, s.ChunkOverlap)
	}
	if s.ChunkOverlap >= s.ChunkSize {
		return fmt.Errorf("%w: chunk overlap %d must be less than chunk size %d",
			ErrInvalidConfig, s.ChunkOverlap, s.ChunkSize)
	}
	if s.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalidConfig, s.TopK)
	}
	if s.SimilarityThreshold < 0 || s.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity threshold must be in [0,1], got %g",
			ErrInvalidConfig, s.SimilarityThreshold)
	}
	if s.ContextBudget <= 0 {
		return fmt.Errorf("%w: context budget must be positive, got %d", ErrInvalidConfig, s.ContextBudget)
	}
	if s.EmbeddingDimension <= 0 {
		return fmt.Errorf("%w: embedding dimension must be positive, got %d",
			ErrInvalidConfig, s.EmbeddingDimension)
	}
	if s.MaxOutputTokens <= 0 {
		return fmt.Errorf("%w: max output tokens must be positive, got %d",
			ErrInvalidConfig, s.MaxOutputTokens)
	}
	return nil
}

// EmbeddingSettings configures the embedding provider.
type EmbeddingSettings struct {
	// Provider selects the embedding backend.
	Provider AIProvider

	// Model is the embedding model identifier.
	Model string

	// APIKey authenticates with hosted providers.
	APIKey string

	// BaseURL overrides the provider endpoint (Azure, proxies, local).
	BaseURL string

	// Dimension is the expected vector size for the model.
	Dimension int
}

// IsConfigured reports whether the settings are complete enough to
// construct a service.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings configures the completion provider.
type LLMSettings struct {
	// Provider selects the completion backend.
	Provider AIProvider

	// Model is the completion model identifier.
	Model string

	// APIKey authenticates with hosted providers.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string
}

// IsConfigured reports whether the settings are complete enough to
// construct a service.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// DefaultEmbeddingModels maps providers to their default embedding model.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		ProviderOpenAI: "text-embedding-3-small",
		ProviderOllama: "nomic-embed-text",
	}
}

// DefaultLLMModels maps providers to their default completion model.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		ProviderOpenAI:    "gpt-5-nano",
		ProviderAnthropic: "claude-3-5-sonnet-latest",
		ProviderOllama:    "llama3.2",
	}
}
