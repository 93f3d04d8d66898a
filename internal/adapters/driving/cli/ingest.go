package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askdocs/askdocs-cli/internal/core/ports/driving"
)

var ingestTitle string

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Add documents to the knowledge base",
	Long: `Reads one or more text files, splits them into overlapping chunks,
embeds each chunk, and stores everything in the local knowledge base.

With no arguments, reads a single document from stdin (requires --title).`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestTitle, "title", "t", "", "document title (defaults to the file name)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := initServices(ctx); err != nil {
		return err
	}
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if len(args) == 0 {
		return ingestStdin(ctx, cmd)
	}

	if ingestTitle != "" && len(args) > 1 {
		return errors.New("--title can only be used with a single file")
	}

	for _, path := range args {
		if err := ingestFile(ctx, cmd, path); err != nil {
			return err
		}
	}
	return nil
}

func ingestFile(ctx context.Context, cmd *cobra.Command, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	title := ingestTitle
	if title == "" {
		title = filepath.Base(path)
	}

	doc, err := documentService.Ingest(ctx, driving.IngestRequest{
		Title:   title,
		Content: string(content),
		Metadata: map[string]any{
			"source_path": path,
		},
	})
	if err != nil {
		return fmt.Errorf("ingest %s: %w", path, err)
	}

	cmd.Printf("Ingested %q (%d chunks) as %s\n", doc.Title, doc.ChunkCount, doc.ID)
	return nil
}

func ingestStdin(ctx context.Context, cmd *cobra.Command) error {
	if strings.TrimSpace(ingestTitle) == "" {
		return errors.New("--title is required when reading from stdin")
	}

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	doc, err := documentService.Ingest(ctx, driving.IngestRequest{
		Title:    ingestTitle,
		Content:  string(content),
		Metadata: map[string]any{},
	})
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	cmd.Printf("Ingested %q (%d chunks) as %s\n", doc.Title, doc.ChunkCount, doc.ID)
	return nil
}
