package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

// Config is the on-disk configuration layout. Zero values mean
// "use the built-in default", resolved in the accessor methods.
type Config struct {
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	RAG       RAGConfig       `toml:"rag"`
}

// EmbeddingConfig configures the embedding provider section.
type EmbeddingConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	Dimension int    `toml:"dimension"`
}

// LLMConfig configures the completion provider section.
type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

// RAGConfig configures the pipeline tuning section. Fields are pointers
// so an absent key and an explicit zero are distinguishable: only absent
// keys fall back to the built-in defaults.
type RAGConfig struct {
	ChunkSize           *int     `toml:"chunk_size,omitempty"`
	ChunkOverlap        *int     `toml:"chunk_overlap,omitempty"`
	TopK                *int     `toml:"top_k,omitempty"`
	SimilarityThreshold *float64 `toml:"similarity_threshold,omitempty"`
	ContextBudget       *int     `toml:"context_budget,omitempty"`
	MaxOutputTokens     *int     `toml:"max_output_tokens,omitempty"`
	Temperature         *float64 `toml:"temperature,omitempty"`
}

// ConfigStore is a TOML-backed configuration store. Values are loaded
// once at construction and persisted atomically on Save.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	config   Config
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.askdocs/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".askdocs")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Load reads configuration from the TOML file. A missing file is not an
// error; the store starts with zero values and built-in defaults apply.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.config = Config{}
			return nil
		}
		return err
	}

	var loaded Config
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}

	s.config = loaded
	return nil
}

// Save persists the current configuration to disk with restricted
// permissions, since the file may contain API keys.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(s.config)
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0600)
}

// Config returns a copy of the current configuration.
func (s *ConfigStore) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Update applies fn to the configuration under the write lock. The
// caller must invoke Save separately to persist the result.
func (s *ConfigStore) Update(fn func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.config)
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// EmbeddingSettings resolves the embedding section into validated domain
// settings. Environment variables override stored API keys so keys never
// need to touch disk.
func (s *ConfigStore) EmbeddingSettings() domain.EmbeddingSettings {
	s.mu.RLock()
	cfg := s.config.Embedding
	s.mu.RUnlock()

	provider := domain.AIProvider(cfg.Provider)
	if cfg.Provider == "" {
		provider = domain.ProviderOpenAI
	}

	model := cfg.Model
	if model == "" {
		model = domain.DefaultEmbeddingModels()[provider]
	}

	dimension := cfg.Dimension
	if dimension == 0 {
		dimension = domain.DefaultEmbeddingDimension
	}

	apiKey := cfg.APIKey
	if env := apiKeyFromEnv(provider); env != "" {
		apiKey = env
	}

	return domain.EmbeddingSettings{
		Provider:  provider,
		Model:     model,
		APIKey:    apiKey,
		BaseURL:   cfg.BaseURL,
		Dimension: dimension,
	}
}

// LLMSettings resolves the LLM section into validated domain settings.
func (s *ConfigStore) LLMSettings() domain.LLMSettings {
	s.mu.RLock()
	cfg := s.config.LLM
	s.mu.RUnlock()

	provider := domain.AIProvider(cfg.Provider)
	if cfg.Provider == "" {
		provider = domain.ProviderOpenAI
	}

	model := cfg.Model
	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}

	apiKey := cfg.APIKey
	if env := apiKeyFromEnv(provider); env != "" {
		apiKey = env
	}

	return domain.LLMSettings{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
		BaseURL:  cfg.BaseURL,
	}
}

// RAGSettings resolves the pipeline section, applying defaults for any
// unset value, and validates the result.
func (s *ConfigStore) RAGSettings() (domain.RAGSettings, error) {
	s.mu.RLock()
	cfg := s.config.RAG
	s.mu.RUnlock()

	settings := domain.DefaultRAGSettings()
	if cfg.ChunkSize != nil {
		settings.ChunkSize = *cfg.ChunkSize
	}
	if cfg.ChunkOverlap != nil {
		settings.ChunkOverlap = *cfg.ChunkOverlap
	}
	if cfg.TopK != nil {
		settings.TopK = *cfg.TopK
	}
	if cfg.SimilarityThreshold != nil {
		settings.SimilarityThreshold = *cfg.SimilarityThreshold
	}
	if cfg.ContextBudget != nil {
		settings.ContextBudget = *cfg.ContextBudget
	}
	if cfg.MaxOutputTokens != nil {
		settings.MaxOutputTokens = *cfg.MaxOutputTokens
	}
	if cfg.Temperature != nil {
		settings.Temperature = *cfg.Temperature
	}

	emb := s.EmbeddingSettings()
	if emb.Dimension > 0 {
		settings.EmbeddingDimension = emb.Dimension
	}

	if err := settings.Validate(); err != nil {
		return domain.RAGSettings{}, err
	}
	return settings, nil
}

// apiKeyFromEnv returns the conventional environment variable for a
// provider's API key, if set.
func apiKeyFromEnv(provider domain.AIProvider) string {
	switch provider {
	case domain.ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case domain.ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}
