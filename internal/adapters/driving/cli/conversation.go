package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var conversationCmd = &cobra.Command{
	Use:     "conversation",
	Aliases: []string{"conversations"},
	Short:   "Manage saved conversations",
	Long:    `List, replay, or delete conversations recorded by ask and chat.`,
}

var conversationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all conversations",
	Args:  cobra.NoArgs,
	RunE:  runConversationList,
}

var conversationShowCmd = &cobra.Command{
	Use:   "show [conversation-id]",
	Short: "Show a conversation's messages",
	Args:  cobra.ExactArgs(1),
	RunE:  runConversationShow,
}

var conversationDeleteCmd = &cobra.Command{
	Use:   "delete [conversation-id]",
	Short: "Delete a conversation and its messages",
	Args:  cobra.ExactArgs(1),
	RunE:  runConversationDelete,
}

func init() {
	conversationCmd.AddCommand(conversationListCmd)
	conversationCmd.AddCommand(conversationShowCmd)
	conversationCmd.AddCommand(conversationDeleteCmd)
	rootCmd.AddCommand(conversationCmd)
}

func runConversationList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initServices(ctx); err != nil {
		return err
	}
	if conversationService == nil {
		return errors.New("conversation service not configured")
	}

	convs, err := conversationService.ListConversations(ctx)
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	if len(convs) == 0 {
		cmd.Println("No conversations yet.")
		return nil
	}

	cmd.Println("Conversations:")
	cmd.Println()
	for i := range convs {
		cmd.Printf("  %s\n", convs[i].ID)
		cmd.Printf("      Title:   %s\n", convs[i].Title)
		cmd.Printf("      Updated: %s\n", convs[i].UpdatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}
	return nil
}

func runConversationShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := initServices(ctx); err != nil {
		return err
	}
	if conversationService == nil {
		return errors.New("conversation service not configured")
	}

	messages, err := conversationService.GetMessages(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get conversation: %w", err)
	}

	for _, msg := range messages {
		cmd.Printf("[%s] %s\n", strings.ToUpper(msg.Role), msg.CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println(msg.Content)
		cmd.Println()
	}
	return nil
}

func runConversationDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := initServices(ctx); err != nil {
		return err
	}
	if conversationService == nil {
		return errors.New("conversation service not configured")
	}

	if err := conversationService.DeleteConversation(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	cmd.Printf("Deleted conversation %s\n", args[0])
	return nil
}
