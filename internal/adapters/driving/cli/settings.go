package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure AI providers, segmentation, and other options.

Use subcommands to configure specific settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the generation provider",
	Long:  `Configure the LLM provider used for chat answers and summaries.`,
	RunE:  runSettingsLLM,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	Long:  `Configure the embedding provider used to index and search transcripts.`,
	RunE:  runSettingsEmbedding,
}

var settingsOwnerCmd = &cobra.Command{
	Use:   "owner [name]",
	Short: "Set the credential owner",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsOwner,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsOwnerCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	settings := settingsStore.Settings()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[General]")
	cmd.Printf("  Owner: %s\n", settings.EffectiveOwner())
	if settings.DataDir != "" {
		cmd.Printf("  Data dir: %s\n", settings.DataDir)
	}
	cmd.Println()

	cmd.Println("[LLM]")
	printProvider(cmd, settings.LLM.Provider, settings.LLM.Model, settings.LLM.BaseURL, settings.LLM.APIKey)
	cmd.Println()

	cmd.Println("[Embedding]")
	printProvider(cmd, settings.Embedding.Provider, settings.Embedding.Model, settings.Embedding.BaseURL, settings.Embedding.APIKey)
	cmd.Println()

	cmd.Println("[Segmenter]")
	seg := settings.Segmenter
	cmd.Printf("  Max chunk chars: %d\n", valueOr(seg.MaxChunkChars, domain.DefaultMaxChunkChars))
	cmd.Printf("  Overlap chars: %d\n", valueOr(seg.OverlapChars, domain.DefaultOverlapChars))
	cmd.Printf("  Min sentence chars: %d\n", valueOr(seg.MinSentenceChars, domain.DefaultMinSentenceChars))

	return nil
}

func printProvider(cmd *cobra.Command, provider domain.AIProvider, model, baseURL, apiKey string) {
	if !provider.IsValid() {
		cmd.Println("  Provider: (not configured)")
		return
	}
	cmd.Printf("  Provider: %s\n", provider.Description())
	if model != "" {
		cmd.Printf("  Model: %s\n", model)
	} else {
		cmd.Printf("  Model: (provider default)\n")
	}
	if provider.IsLocal() && baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (resolved per owner)\n")
		}
	}
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	provider, model, err := chooseProvider(cmd, reader)
	if err != nil {
		return err
	}

	settings := settingsStore.Settings()
	settings.LLM.Provider = provider
	settings.LLM.Model = model
	if err := settingsStore.Update(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("LLM provider configured: %s (%s)\n", provider.Description(), model)
	if provider.RequiresAPIKey() {
		cmd.Println("Run 'recap credentials set " + provider.String() + "' to store an API key.")
	}

	// Services were wired against the old settings; force a re-wire on the
	// next invocation of a new process. Within this one, only the summary
	// registry can be refreshed safely.
	if summaryRegistry != nil {
		summaryRegistry.Evict(effectiveOwner())
	}
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	provider, model, err := chooseProvider(cmd, reader)
	if err != nil {
		return err
	}
	if provider == domain.AIProviderGemini {
		return errors.New("gemini does not serve embeddings here, use openai or ollama")
	}

	settings := settingsStore.Settings()
	settings.Embedding.Provider = provider
	settings.Embedding.Model = model
	if err := settingsStore.Update(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Embedding provider configured: %s (%s)\n", provider.Description(), model)
	cmd.Println("Note: changing the embedding model invalidates existing indexes; re-ingest your videos.")
	return nil
}

func runSettingsOwner(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	settings := settingsStore.Settings()
	settings.Owner = strings.TrimSpace(args[0])
	if err := settingsStore.Update(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ownerID = settings.EffectiveOwner()

	cmd.Printf("Owner set to %s.\n", settings.EffectiveOwner())
	return nil
}

func chooseProvider(cmd *cobra.Command, reader *bufio.Reader) (domain.AIProvider, string, error) {
	providers := []domain.AIProvider{
		domain.AIProviderOpenAI,
		domain.AIProviderGemini,
		domain.AIProviderOllama,
	}

	cmd.Println("Select Provider")
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	cmd.Print("Enter model name (empty for provider default): ")
	model := readLine(reader)

	return provider, model, nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func valueOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
