package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs/askdocs-cli/internal/core/ports/driving"
)

func TestStatusCmd_Use(t *testing.T) {
	assert.Equal(t, "status", statusCmd.Use)
}

func TestStatusCmd_Short(t *testing.T) {
	assert.Equal(t, "Show knowledge base and provider status", statusCmd.Short)
}

func TestStatusCmd_ReportsDocumentCounts(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := documentService.Ingest(context.Background(), driving.IngestRequest{
		Title:   "Handbook",
		Content: "Policies and procedures.",
	})
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"status"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err = rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Documents:  1 (1 chunks)")
}

func TestStatusCmd_EmptyKnowledgeBase(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"status"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Documents:  0 (0 chunks)")
}
