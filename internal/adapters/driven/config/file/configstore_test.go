package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestNewConfigStore_EmptyDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_SaveAndReload(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	store.Update(func(c *Config) {
		c.LLM.Provider = "anthropic"
		c.LLM.Model = "claude-3-5-sonnet-latest"
		c.RAG.TopK = intPtr(10)
	})
	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	cfg := reloaded.Config()
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "claude-3-5-sonnet-latest", cfg.LLM.Model)
	require.NotNil(t, cfg.RAG.TopK)
	assert.Equal(t, 10, *cfg.RAG.TopK)
}

func TestConfigStore_RestrictedPermissions(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_RAGSettingsDefaults(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	settings, err := store.RAGSettings()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultChunkSize, settings.ChunkSize)
	assert.Equal(t, domain.DefaultChunkOverlap, settings.ChunkOverlap)
	assert.Equal(t, domain.DefaultTopK, settings.TopK)
	assert.Equal(t, domain.DefaultSimilarityThreshold, settings.SimilarityThreshold)
}

func TestConfigStore_RAGSettingsOverrides(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	store.Update(func(c *Config) {
		c.RAG.ChunkSize = intPtr(500)
		c.RAG.ChunkOverlap = intPtr(100)
		c.RAG.SimilarityThreshold = floatPtr(0.7)
	})

	settings, err := store.RAGSettings()
	require.NoError(t, err)
	assert.Equal(t, 500, settings.ChunkSize)
	assert.Equal(t, 100, settings.ChunkOverlap)
	assert.Equal(t, 0.7, settings.SimilarityThreshold)
}

func TestConfigStore_RAGSettingsExplicitZeroHonoured(t *testing.T) {
	dir := t.TempDir()
	contents := "[rag]\nchunk_overlap = 0\nsimilarity_threshold = 0.0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0o600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	settings, err := store.RAGSettings()
	require.NoError(t, err)
	assert.Equal(t, 0, settings.ChunkOverlap, "explicit zero overlap must not fall back to the default")
	assert.Equal(t, 0.0, settings.SimilarityThreshold, "explicit zero threshold must not fall back to the default")
}

func TestConfigStore_RAGSettingsInvalid(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	store.Update(func(c *Config) {
		c.RAG.ChunkSize = intPtr(100)
		c.RAG.ChunkOverlap = intPtr(100)
	})

	_, err = store.RAGSettings()
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestConfigStore_EnvOverridesAPIKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	store.Update(func(c *Config) {
		c.LLM.Provider = "openai"
		c.LLM.APIKey = "from-file"
	})

	t.Setenv("OPENAI_API_KEY", "from-env")
	settings := store.LLMSettings()
	assert.Equal(t, "from-env", settings.APIKey)
}

func TestConfigStore_DefaultModels(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	emb := store.EmbeddingSettings()
	assert.Equal(t, domain.ProviderOpenAI, emb.Provider)
	assert.Equal(t, "text-embedding-3-small", emb.Model)
	assert.Equal(t, domain.DefaultEmbeddingDimension, emb.Dimension)

	llm := store.LLMSettings()
	assert.Equal(t, "gpt-5-nano", llm.Model)
}
