package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/askdocs/askdocs-cli/internal/adapters/driven/ai"
	"github.com/askdocs/askdocs-cli/internal/adapters/driven/config/file"
	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure AI providers and pipeline tuning.

Use subcommands to configure specific settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding [provider]",
	Short: "Configure embedding provider",
	Long: `Configure the embedding provider used to vectorise documents.

Available providers:
  openai - hosted, requires an API key
  ollama - local, no key required`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm [provider]",
	Short: "Configure LLM provider",
	Long: `Configure the completion provider used to generate answers.

Available providers:
  openai    - hosted, requires an API key
  anthropic - hosted, requires an API key
  ollama    - local, no key required`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsLLM,
}

// Flags for provider configuration.
var (
	settingsModel   string
	settingsBaseURL string
)

func init() {
	settingsEmbeddingCmd.Flags().StringVarP(&settingsModel, "model", "m", "", "model identifier (empty = provider default)")
	settingsEmbeddingCmd.Flags().StringVar(&settingsBaseURL, "base-url", "", "override the provider endpoint")
	settingsLLMCmd.Flags().StringVarP(&settingsModel, "model", "m", "", "model identifier (empty = provider default)")
	settingsLLMCmd.Flags().StringVar(&settingsBaseURL, "base-url", "", "override the provider endpoint")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	emb := configStore.EmbeddingSettings()
	llm := configStore.LLMSettings()
	rag, err := configStore.RAGSettings()
	if err != nil {
		return err
	}

	cmd.Println("Embedding:")
	cmd.Printf("  Provider:  %s\n", emb.Provider)
	cmd.Printf("  Model:     %s\n", emb.Model)
	cmd.Printf("  Dimension: %d\n", emb.Dimension)
	cmd.Printf("  API key:   %s\n", maskAPIKey(emb.APIKey))
	if emb.BaseURL != "" {
		cmd.Printf("  Base URL:  %s\n", emb.BaseURL)
	}

	cmd.Println("LLM:")
	cmd.Printf("  Provider: %s\n", llm.Provider)
	cmd.Printf("  Model:    %s\n", llm.Model)
	cmd.Printf("  API key:  %s\n", maskAPIKey(llm.APIKey))
	if llm.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", llm.BaseURL)
	}

	cmd.Println("Pipeline:")
	cmd.Printf("  Chunk size:           %d\n", rag.ChunkSize)
	cmd.Printf("  Chunk overlap:        %d\n", rag.ChunkOverlap)
	cmd.Printf("  Top K:                %d\n", rag.TopK)
	cmd.Printf("  Similarity threshold: %.2f\n", rag.SimilarityThreshold)
	cmd.Printf("  Context budget:       %d\n", rag.ContextBudget)
	cmd.Printf("  Max output tokens:    %d\n", rag.MaxOutputTokens)

	cmd.Printf("\nConfig file: %s\n", configStore.Path())
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	provider := domain.AIProvider(args[0])
	if !provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, args[0])
	}

	apiKey, err := promptForAPIKey(cmd, provider)
	if err != nil {
		return err
	}

	settings := domain.EmbeddingSettings{
		Provider: provider,
		Model:    settingsModel,
		APIKey:   apiKey,
		BaseURL:  settingsBaseURL,
	}
	if err := ai.ValidateEmbeddingConfig(&settings); err != nil {
		return fmt.Errorf("provider validation failed: %w", err)
	}

	configStore.Update(func(c *file.Config) {
		c.Embedding.Provider = provider.String()
		c.Embedding.Model = settingsModel
		c.Embedding.APIKey = apiKey
		c.Embedding.BaseURL = settingsBaseURL
	})
	if err := configStore.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	cmd.Printf("Embedding provider set to %s\n", provider)
	return nil
}

func runSettingsLLM(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	provider := domain.AIProvider(args[0])
	if !provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, args[0])
	}

	apiKey, err := promptForAPIKey(cmd, provider)
	if err != nil {
		return err
	}

	settings := domain.LLMSettings{
		Provider: provider,
		Model:    settingsModel,
		APIKey:   apiKey,
		BaseURL:  settingsBaseURL,
	}
	if err := ai.ValidateLLMConfig(&settings); err != nil {
		return fmt.Errorf("provider validation failed: %w", err)
	}

	configStore.Update(func(c *file.Config) {
		c.LLM.Provider = provider.String()
		c.LLM.Model = settingsModel
		c.LLM.APIKey = apiKey
		c.LLM.BaseURL = settingsBaseURL
	})
	if err := configStore.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	cmd.Printf("LLM provider set to %s\n", provider)
	return nil
}

// promptForAPIKey asks for a key when the provider needs one. An empty
// entry keeps the environment variable as the only source.
func promptForAPIKey(cmd *cobra.Command, provider domain.AIProvider) (string, error) {
	if !provider.RequiresAPIKey() {
		return "", nil
	}

	cmd.Printf("API key for %s (empty to use environment variable): ", provider)
	key := readPassword()
	cmd.Println()
	return key, nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
