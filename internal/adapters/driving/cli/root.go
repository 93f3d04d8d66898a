// Package cli implements the AskDocs command-line interface.
// Commands are thin adapters over the core services: they parse flags,
// call the driving ports, and format output.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/askdocs/askdocs-cli/internal/adapters/driven/ai"
	"github.com/askdocs/askdocs-cli/internal/adapters/driven/config/file"
	"github.com/askdocs/askdocs-cli/internal/adapters/driven/storage/sqlite"
	"github.com/askdocs/askdocs-cli/internal/adapters/driven/vector/memory"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driving"
	"github.com/askdocs/askdocs-cli/internal/core/services"
	"github.com/askdocs/askdocs-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	flagVerbose   bool
	flagConfigDir string
	flagDataDir   string
)

// Wired services. Commands nil-check these so tests can substitute mocks.
var (
	documentService     driving.DocumentService
	queryService        driving.QueryService
	conversationService driving.ConversationService
	configStore         *file.ConfigStore
	promptStore         *file.PromptStore
	dataStore           *sqlite.Store
	embeddingSvc        driven.EmbeddingService
	llmSvc              driven.LLMService
	vectorIndex         driven.VectorIndex
)

var rootCmd = &cobra.Command{
	Use:   "askdocs",
	Short: "Ask questions about your documents",
	Long: `AskDocs answers questions about your private documents.

Ingest documents into a local knowledge base, then ask questions.
Answers are generated from the most relevant document passages and
cite their sources.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default ~/.askdocs)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.askdocs/data)")
}

// Execute runs the root command.
func Execute() {
	defer closeServices()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initServices wires stores, providers, and the RAG pipeline. Called by
// commands that need them; the version and settings commands run without.
func initServices(ctx context.Context) error {
	if documentService != nil && queryService != nil {
		return nil
	}

	if err := initConfig(); err != nil {
		return err
	}

	settings, err := configStore.RAGSettings()
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(flagDataDir)
	if err != nil {
		return fmt.Errorf("open data store: %w", err)
	}
	dataStore = store

	embSettings := configStore.EmbeddingSettings()
	embedder, err := ai.CreateEmbeddingService(&embSettings)
	if err != nil {
		return err
	}
	embeddingSvc = embedder

	llmSettings := configStore.LLMSettings()
	llm, err := ai.CreateLLMService(&llmSettings)
	if err != nil {
		return err
	}
	llmSvc = llm

	index, err := memory.NewIndex(settings.EmbeddingDimension)
	if err != nil {
		return err
	}
	if err := rebuildIndex(ctx, index, store.DocumentStore()); err != nil {
		return fmt.Errorf("rebuild vector index: %w", err)
	}
	vectorIndex = index

	rag, err := services.NewRAGService(
		embedder,
		llm,
		index,
		store.DocumentStore(),
		store.ConversationStore(),
		settings,
	)
	if err != nil {
		return err
	}

	ps, err := file.NewPromptStore(promptDir())
	if err == nil {
		promptStore = ps
		rag.SetPromptStore(ps)
	}

	documentService = rag
	queryService = rag
	conversationService = rag
	return nil
}

// initConfig loads the config store only. Used by commands that must work
// before any provider is configured.
func initConfig() error {
	if configStore != nil {
		return nil
	}
	cs, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	configStore = cs
	return nil
}

// rebuildIndex loads every stored chunk embedding into the in-memory
// vector index. The index is not persisted separately; sqlite is the
// source of truth and the index is derived state.
func rebuildIndex(ctx context.Context, index driven.VectorIndex, docs driven.DocumentStore) error {
	chunks, err := docs.AllChunks(ctx)
	if err != nil {
		return err
	}

	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			continue
		}
		meta := driven.VectorMeta{DocumentID: chunk.DocumentID}
		if err := index.Upsert(ctx, chunk.ID, chunk.Embedding, meta); err != nil {
			return fmt.Errorf("index chunk %s: %w", chunk.ID, err)
		}
	}

	logger.Debug("Rebuilt vector index with %d chunks", len(chunks))
	return nil
}

// promptDir returns the prompt directory under the config dir.
func promptDir() string {
	if flagConfigDir == "" {
		return ""
	}
	return filepath.Join(flagConfigDir, "prompts")
}

// closeServices releases provider connections and the data store.
func closeServices() {
	if embeddingSvc != nil {
		embeddingSvc.Close()
	}
	if llmSvc != nil {
		llmSvc.Close()
	}
	if vectorIndex != nil {
		vectorIndex.Close()
	}
	if promptStore != nil {
		promptStore.Close()
	}
	if dataStore != nil {
		dataStore.Close()
	}
}
