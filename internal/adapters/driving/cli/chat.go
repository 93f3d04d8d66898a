package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/askdocs/askdocs-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Launch an interactive chat about your documents. Follow-up
questions share one conversation, and each answer cites its sources.

Controls:
  Enter - Ask the typed question
  Esc   - Quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx := context.Background()
	if err := initServices(ctx); err != nil {
		return err
	}
	if queryService == nil {
		return errors.New("query service not configured")
	}

	return tui.Run(ctx, queryService)
}
