package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs/askdocs-cli/internal/adapters/driven/config/file"
	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

// setupTestConfig points the config store at a temp directory and
// returns a cleanup that restores the previous global.
func setupTestConfig(t *testing.T) func() {
	t.Helper()

	old := configStore
	cs, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	configStore = cs

	return func() {
		configStore = old
	}
}

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
}

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, 3)
	for _, sub := range settingsCmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "show")
	assert.Contains(t, names, "embedding")
	assert.Contains(t, names, "llm")
}

func TestSettingsEmbeddingCmd_HasModelFlag(t *testing.T) {
	flag := settingsEmbeddingCmd.Flags().Lookup("model")
	require.NotNil(t, flag, "model flag should exist")
	assert.Equal(t, "m", flag.Shorthand)
}

func TestSettingsShowCmd_PrintsDefaults(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Provider:  openai")
	assert.Contains(t, out, "Chunk size:           1000")
	assert.Contains(t, out, "Chunk overlap:        200")
	assert.Contains(t, out, "Config file: "+configStore.Path())
}

func TestSettingsEmbeddingCmd_UnknownProvider(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "embedding", "cohere"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), `unknown provider "cohere"`)
}

func TestSettingsLLMCmd_UnknownProvider(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "llm", "nope"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "empty", key: "", want: "(not set)"},
		{name: "short", key: "abc", want: "****"},
		{name: "long", key: "sk-abcdefghijklmnop", want: "sk-a...mnop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskAPIKey(tt.key))
		})
	}
}
