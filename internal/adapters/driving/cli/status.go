package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// statusPingTimeout bounds each provider connectivity check.
const statusPingTimeout = 5 * time.Second

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show knowledge base and provider status",
	Long: `Reports the number of ingested documents, the state of the data
store, and whether the configured AI providers are reachable.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	if err := initServices(ctx); err != nil {
		cmd.Printf("Services:   not available (%v)\n", err)
		return nil
	}

	if dataStore != nil {
		if err := dataStore.Ping(ctx); err != nil {
			cmd.Printf("Data store: unreachable (%v)\n", err)
		} else {
			cmd.Printf("Data store: ok (%s)\n", dataStore.Path())
		}
	}

	if documentService != nil {
		docs, err := documentService.List(ctx)
		if err != nil {
			cmd.Printf("Documents:  error (%v)\n", err)
		} else {
			chunks := 0
			for i := range docs {
				chunks += docs[i].ChunkCount
			}
			cmd.Printf("Documents:  %d (%d chunks)\n", len(docs), chunks)
		}
	}

	if embeddingSvc != nil {
		pingCtx, cancel := context.WithTimeout(ctx, statusPingTimeout)
		err := embeddingSvc.Ping(pingCtx)
		cancel()
		if err != nil {
			cmd.Printf("Embedding:  %s unreachable (%v)\n", embeddingSvc.ModelName(), err)
		} else {
			cmd.Printf("Embedding:  %s ok\n", embeddingSvc.ModelName())
		}
	}

	if llmSvc != nil {
		pingCtx, cancel := context.WithTimeout(ctx, statusPingTimeout)
		err := llmSvc.Ping(pingCtx)
		cancel()
		if err != nil {
			cmd.Printf("LLM:        %s unreachable (%v)\n", llmSvc.ModelName(), err)
		} else {
			cmd.Printf("LLM:        %s ok\n", llmSvc.ModelName())
		}
	}

	return nil
}
