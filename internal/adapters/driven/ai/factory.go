// Package ai provides factory functions for creating AI service adapters
// from settings.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/recap-labs/recap-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/recap-labs/recap-cli/internal/adapters/driven/embedding/openai"
	geminillm "github.com/recap-labs/recap-cli/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/recap-labs/recap-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/recap-labs/recap-cli/internal/adapters/driven/llm/openai"
	"github.com/recap-labs/recap-cli/internal/core/domain"
	"github.com/recap-labs/recap-cli/internal/core/ports/driven"
)

// pingTimeout bounds connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates an embedding service for the configured
// provider. Returns nil without error when settings are absent.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil
	case domain.AIProviderGemini:
		return nil, fmt.Errorf("embedding provider %q is not supported, use openai or ollama",
			settings.Provider)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", settings.Provider)
	}
}

// CreateLLMService creates an LLM service for the configured provider
// using the given secret. The secret takes precedence over any key in the
// settings, which lets per-owner credentials flow through unchanged
// settings.
func CreateLLMService(settings *domain.LLMSettings, secret string) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("LLM provider is not configured")
	}
	if secret == "" {
		secret = settings.APIKey
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  secret,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderGemini:
		return geminillm.NewLLMService(geminillm.Config{
			APIKey:  secret,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", settings.Provider)
	}
}

// LLMFactory returns a constructor that binds resolved secrets to new LLM
// instances of the configured provider.
func LLMFactory(settings *domain.LLMSettings) func(secret string) (driven.LLMService, error) {
	return func(secret string) (driven.LLMService, error) {
		return CreateLLMService(settings, secret)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and
// checks the provider is reachable before handing it out.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and checks the
// provider is reachable before handing it out.
func CreateAndValidateLLMService(settings *domain.LLMSettings, secret string) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings, secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}
