// Package cli provides the command line interface for recap.
// It implements a driving adapter following hexagonal architecture
// principles: commands talk to the core exclusively through driving
// ports, wired once at startup.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/recap-labs/recap-cli/internal/adapters/driven/ai"
	cachefile "github.com/recap-labs/recap-cli/internal/adapters/driven/cache/file"
	configfile "github.com/recap-labs/recap-cli/internal/adapters/driven/config/file"
	credfile "github.com/recap-labs/recap-cli/internal/adapters/driven/credentials/file"
	"github.com/recap-labs/recap-cli/internal/adapters/driven/index/sqlite"
	"github.com/recap-labs/recap-cli/internal/core/domain"
	"github.com/recap-labs/recap-cli/internal/core/ports/driven"
	"github.com/recap-labs/recap-cli/internal/core/ports/driving"
	"github.com/recap-labs/recap-cli/internal/core/services"
	"github.com/recap-labs/recap-cli/internal/logger"
	"github.com/recap-labs/recap-cli/internal/segment"
)

// version is set at build time via -ldflags.
var version = "dev"

// Embedding request throttle applied during batch ingestion.
const (
	embedRequestsPerSecond = 2
	embedBurst             = 4
)

// Persistent flags.
var (
	verbose   bool
	configDir string
	dataDir   string
)

// Services wired by initServices. Tests replace these directly.
var (
	indexService    driving.IndexService
	chatService     driving.ChatService
	summaryRegistry *services.Registry
	credentialStore driven.CredentialManager
	settingsStore   *configfile.SettingsStore
	promptStore     *configfile.PromptStore
	ownerID         string
)

// servicesWired guards against double initialisation; tests set it when
// injecting mocks.
var servicesWired bool

var rootCmd = &cobra.Command{
	Use:   "recap",
	Short: "Chat with and summarise video transcripts",
	Long: `Recap indexes video transcripts for retrieval-augmented chat and
generates style-specific summaries.

Ingest a transcript once, then ask questions about it or summarise it in
different styles. All data stays on your machine; generation uses the
AI provider you configure.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.recap)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.recap/data)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires the adapters and core services. It runs once; later
// invocations are no-ops so tests can pre-wire mocks.
func initServices() error {
	if servicesWired {
		return nil
	}

	store, err := configfile.NewSettingsStore(configDir)
	if err != nil {
		return fmt.Errorf("opening settings: %w", err)
	}
	settingsStore = store
	settings := store.Settings()
	ownerID = settings.EffectiveOwner()

	effectiveDataDir := dataDir
	if effectiveDataDir == "" {
		effectiveDataDir = settings.DataDir
	}

	collections, err := sqlite.NewStore(effectiveDataDir)
	if err != nil {
		return fmt.Errorf("opening index store: %w", err)
	}

	embedder, err := ai.CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		return fmt.Errorf("configuring embedding backend: %w", err)
	}

	idx := services.NewIndexService(collections, embedder, segment.FromSettings(settings.Segmenter))
	idx.SetRateLimiter(rate.NewLimiter(rate.Limit(embedRequestsPerSecond), embedBurst))
	indexService = idx

	creds, err := credfile.NewStore(configDir)
	if err != nil {
		return fmt.Errorf("opening credential store: %w", err)
	}
	credentialStore = creds

	prompts, err := configfile.NewPromptStore("")
	if err != nil {
		logger.Warn("prompt store unavailable, using built-in prompts: %v", err)
	} else {
		promptStore = prompts
		if err := prompts.Watch(); err != nil {
			logger.Debug("prompt watcher not started: %v", err)
		}
	}

	chat := services.NewChatService(indexService, chatLLM(&settings, creds))
	if promptStore != nil {
		chat.SetPromptStore(promptStore)
	}
	chatService = chat

	summaryCache, err := cachefile.NewCache("")
	if err != nil {
		return fmt.Errorf("opening summary cache: %w", err)
	}

	llmSettings := settings.LLM
	summaryRegistry = services.NewRegistry(func(string) (driving.SummaryService, error) {
		svc, err := services.NewSummaryService(
			ai.LLMFactory(&llmSettings), summaryCache, creds, llmSettings.Provider,
		)
		if err != nil {
			return nil, err
		}
		if promptStore != nil {
			svc.SetPromptStore(promptStore)
		}
		return svc, nil
	})

	servicesWired = true
	return nil
}

// chatLLM builds the generation backend for the chat pipeline, resolving
// the owner's default credential when the settings carry no key. A missing
// or misconfigured backend degrades chat instead of failing startup: the
// index commands must keep working without one.
func chatLLM(settings *configfile.Settings, creds driven.CredentialStore) driven.LLMService {
	if !settings.LLM.IsConfigured() {
		return nil
	}

	secret := ""
	if settings.LLM.Provider.RequiresAPIKey() && settings.LLM.APIKey == "" {
		s, err := creds.DefaultSecret(context.Background(), settings.EffectiveOwner(), settings.LLM.Provider)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("resolving credential for %s: %v", settings.LLM.Provider, err)
		}
		secret = s
	}

	llm, err := ai.CreateLLMService(&settings.LLM, secret)
	if err != nil {
		logger.Warn("chat model unavailable: %v", err)
		return nil
	}
	return llm
}

// summaryServiceForOwner resolves the configured owner's summary service.
func summaryServiceForOwner() (driving.SummaryService, error) {
	return summaryServiceFor(effectiveOwner())
}

func summaryServiceFor(owner string) (driving.SummaryService, error) {
	if summaryRegistry == nil {
		return nil, errors.New("summary service not configured")
	}
	return summaryRegistry.For(owner)
}

func effectiveOwner() string {
	if ownerID == "" {
		return configfile.DefaultOwner
	}
	return ownerID
}
