package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/recap-labs/recap-cli/internal/core/domain"
	"github.com/recap-labs/recap-cli/internal/core/ports/driven"
	"github.com/recap-labs/recap-cli/internal/core/ports/driving"
	"github.com/recap-labs/recap-cli/internal/logger"
)

// Ensure SummaryService implements the interface.
var _ driving.SummaryService = (*SummaryService)(nil)

// Summary generation tuning.
const (
	summaryMaxTokens   = 2048
	summaryTemperature = 0.3
)

// LLMFactory builds a generation backend bound to a resolved secret.
// The provider variant is fixed at configuration time; only the secret
// varies per owner.
type LLMFactory func(secret string) (driven.LLMService, error)

// SummaryService generates style-specific transcript summaries with a
// content-addressed write-through cache and per-owner credential
// resolution.
type SummaryService struct {
	llmFor      LLMFactory
	cache       driven.SummaryCache
	credentials driven.CredentialStore
	provider    domain.AIProvider
	promptStore driven.PromptStore

	// group de-duplicates concurrent misses on the same cache key so
	// racing requests invoke the model once. Purely an optimisation:
	// double generation would be an idempotent overwrite.
	group singleflight.Group
}

// NewSummaryService creates a new summary service.
// It validates the style prompt registry so a broken registry fails here
// rather than mid-request.
func NewSummaryService(
	llmFor LLMFactory,
	cache driven.SummaryCache,
	credentials driven.CredentialStore,
	provider domain.AIProvider,
) (*SummaryService, error) {
	if err := validateStylePrompts(); err != nil {
		return nil, err
	}
	return &SummaryService{
		llmFor:      llmFor,
		cache:       cache,
		credentials: credentials,
		provider:    provider,
	}, nil
}

// SetPromptStore sets the prompt store for loading customised style
// templates. If not set, the service uses the built-in registry.
func (s *SummaryService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Summarize returns a summary of the transcript in the given style.
//
// Order of checks matters and is part of the contract:
//  1. whitespace-only transcript fails with ErrEmptyTranscript before any
//     cache lookup or credential check
//  2. unknown styles silently fall back to comprehensive
//  3. a cache hit returns immediately without touching credentials or the
//     model
//  4. on a miss, the owner's credential is resolved first so a missing key
//     surfaces as ErrNoCredential, never as a downstream API failure
func (s *SummaryService) Summarize(
	ctx context.Context, ownerID, transcript string, style domain.SummaryStyle,
) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", domain.ErrEmptyTranscript
	}

	if !style.IsValid() {
		logger.Warn("unknown summary style %q, using %s", style, domain.StyleComprehensive)
		style = domain.StyleComprehensive
	}

	key := domain.SummaryCacheKey(transcript, style)

	if s.cache != nil {
		entry, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			logger.Info("summary cache hit: %s", key)
			return entry.Summary, nil
		case !errors.Is(err, domain.ErrNotFound):
			// A broken cache must not block generation.
			logger.Warn("summary cache read failed: %v", err)
		}
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		return s.generate(ctx, ownerID, transcript, style, key)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// generate runs the cache-miss path: resolve credential, render the
// style's template, invoke the model, write through to cache.
func (s *SummaryService) generate(
	ctx context.Context, ownerID, transcript string, style domain.SummaryStyle, key string,
) (string, error) {
	if s.llmFor == nil {
		return "", domain.ErrLLMUnavailable
	}

	secret, err := s.resolveSecret(ctx, ownerID)
	if err != nil {
		return "", err
	}

	llm, err := s.llmFor(secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	defer llm.Close()

	prompt := promptForStyle(s.promptStore, style)
	logger.Info("generating %s summary (%d bytes of transcript)", style, len(transcript))

	response, err := llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: prompt.system},
		{Role: "user", Content: fmt.Sprintf(prompt.user, transcript)},
	}, driven.ChatOptions{
		MaxTokens:   summaryMaxTokens,
		Temperature: summaryTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	summary := strings.TrimSpace(response)
	if summary == "" {
		return "", fmt.Errorf("%w: empty response from model", domain.ErrGenerationFailed)
	}

	if s.cache != nil {
		entry := domain.SummaryEntry{
			Key:     key,
			Summary: summary,
			Metadata: domain.SummaryMetadata{
				Style:         style,
				TextLength:    len(transcript),
				SummaryLength: len(summary),
				CreatedAt:     time.Now().UTC(),
			},
		}
		if err := s.cache.Put(ctx, entry); err != nil {
			// The summary is still good; only the next caller pays.
			logger.Warn("summary cache write failed: %v", err)
		}
	}

	return summary, nil
}

// resolveSecret looks up the owner's default credential for the
// configured provider. Local providers need no key and skip the lookup.
func (s *SummaryService) resolveSecret(ctx context.Context, ownerID string) (string, error) {
	if !s.provider.RequiresAPIKey() {
		return "", nil
	}
	if s.credentials == nil {
		return "", fmt.Errorf("%w: no credential store configured", domain.ErrNoCredential)
	}

	ok, err := s.credentials.HasCredential(ctx, ownerID, s.provider)
	if err != nil {
		return "", fmt.Errorf("%w: lookup failed: %v", domain.ErrNoCredential, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: add a %s API key with 'recap credentials set'",
			domain.ErrNoCredential, s.provider)
	}

	secret, err := s.credentials.DefaultSecret(ctx, ownerID, s.provider)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNoCredential, err)
	}
	return secret, nil
}

// CacheStats returns a read-only snapshot of the summary cache.
func (s *SummaryService) CacheStats(ctx context.Context) (domain.CacheStats, error) {
	if s.cache == nil {
		return domain.CacheStats{}, nil
	}
	return s.cache.Stats(ctx)
}
