package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

func TestConversationCmd_Use(t *testing.T) {
	assert.Equal(t, "conversation", conversationCmd.Use)
}

func TestConversationCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, 3)
	for _, sub := range conversationCmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "show")
	assert.Contains(t, names, "delete")
}

func TestConversationListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"conversation", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No conversations yet.")
}

func TestConversationListCmd_ListsRecordedConversations(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	result, err := queryService.Query(context.Background(), "first question", domain.QueryOptions{})
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"conversation", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err = rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), result.ConversationID)
}

func TestConversationShowCmd_PrintsMessages(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	result, err := queryService.Query(context.Background(), "first question", domain.QueryOptions{})
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"conversation", "show", result.ConversationID})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err = rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[USER]")
	assert.Contains(t, buf.String(), "first question")
	assert.Contains(t, buf.String(), "[ASSISTANT]")
	assert.Contains(t, buf.String(), "Stub answer.")
}

func TestConversationShowCmd_UnknownConversationErrors(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"conversation", "show", "no-such-id"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get conversation")
}

func TestConversationDeleteCmd_DeletesConversation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ctx := context.Background()
	result, err := queryService.Query(ctx, "first question", domain.QueryOptions{})
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"conversation", "delete", result.ConversationID})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err = rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Deleted conversation "+result.ConversationID)

	convs, err := conversationService.ListConversations(ctx)
	require.NoError(t, err)
	assert.Empty(t, convs)
}

func TestConversationDeleteCmd_UnknownConversationErrors(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"conversation", "delete", "no-such-id"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete conversation")
}
