package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage ingested documents",
	Long:  `List, view, or delete documents in the knowledge base.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its chunks",
	Long:  `Removes a document, its chunks, and its vector index entries.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initServices(ctx); err != nil {
		return err
	}
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested yet.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("      Title:  %s\n", docs[i].Title)
		cmd.Printf("      Chunks: %d\n", docs[i].ChunkCount)
		cmd.Printf("      Added:  %s\n", docs[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := initServices(ctx); err != nil {
		return err
	}
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("ID:      %s\n", doc.ID)
	cmd.Printf("Title:   %s\n", doc.Title)
	cmd.Printf("Chunks:  %d\n", doc.ChunkCount)
	cmd.Printf("Added:   %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("Updated: %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))
	for key, value := range doc.Metadata {
		cmd.Printf("%s: %v\n", key, value)
	}
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := initServices(ctx); err != nil {
		return err
	}
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}
