package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

var (
	askTopK         int
	askThreshold    float64
	askDocumentID   string
	askConversation string
	askJSON         bool
	askNoSources    bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Retrieves the most relevant document passages and generates an
answer grounded in them. Each answer cites the passages it drew from.

If no passage clears the similarity threshold, the answer is generated
without document context and says so.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "maximum number of passages to retrieve (0 = configured default)")
	askCmd.Flags().Float64Var(&askThreshold, "threshold", -1, "minimum similarity score in [0,1] (-1 = configured default)")
	askCmd.Flags().StringVar(&askDocumentID, "document", "", "restrict retrieval to a single document ID")
	askCmd.Flags().StringVar(&askConversation, "conversation", "", "continue an existing conversation ID")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the result as JSON")
	askCmd.Flags().BoolVar(&askNoSources, "no-sources", false, "omit source citations from the output")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := initServices(ctx); err != nil {
		return err
	}
	if queryService == nil {
		return errors.New("query service not configured")
	}

	opts := domain.QueryOptions{
		ConversationID:      askConversation,
		TopK:                askTopK,
		SimilarityThreshold: askThreshold,
		DocumentID:          askDocumentID,
		IncludeSources:      !askNoSources,
	}

	result, err := queryService.Query(ctx, args[0], opts)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if askJSON {
		return outputAskJSON(cmd, result)
	}
	return outputAskText(cmd, result)
}

func outputAskJSON(cmd *cobra.Command, result *domain.QueryResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAskText(cmd *cobra.Command, result *domain.QueryResult) error {
	cmd.Println(result.Answer)

	if len(result.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, src := range result.Sources {
			cmd.Printf("  [%d] document=%s chunk=%d (%.2f)\n",
				i+1, src.DocumentID, src.Index, src.Score)
		}
	}

	cmd.Println()
	cmd.Printf("Conversation: %s  Model: %s  Tokens: %d\n",
		result.ConversationID, result.Metadata.Model, result.Metadata.TotalTokens)
	return nil
}
