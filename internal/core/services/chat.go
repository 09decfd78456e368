package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/recap-labs/recap-cli/internal/core/domain"
	"github.com/recap-labs/recap-cli/internal/core/ports/driven"
	"github.com/recap-labs/recap-cli/internal/core/ports/driving"
	"github.com/recap-labs/recap-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// Chat tuning constants.
const (
	// chatTopK is how many chunks ground each answer.
	chatTopK = 3

	// maxHistoryTurns is how many trailing conversation turns are replayed
	// to the model for continuity.
	maxHistoryTurns = 6

	chatMaxTokens   = 500
	chatTemperature = 0.7
)

// Canned user-facing messages for the degraded paths.
const (
	// NoContextMessage is returned when retrieval finds nothing relevant.
	// Generating from an empty context invites hallucination, so the model
	// is never called on this path.
	NoContextMessage = "I couldn't find any relevant information in the video content to answer your question."

	// DegradedMessage is returned when anything in the pipeline fails.
	// Chat is a user-facing surface: it apologises instead of surfacing
	// stack traces.
	DegradedMessage = "Sorry, I encountered a problem while processing your request. Please try again."
)

// defaultChatSystemPrompt grounds answers in retrieved transcript context.
const defaultChatSystemPrompt = `You are a helpful assistant that answers questions about video content.
Use the following context from the video to answer the user's question:

%s

If the context doesn't contain enough information to answer the question, say so.
Be concise but informative.`

// ChatService answers questions about a video using retrieval-augmented
// generation. It keeps no state of its own; per-video collections make
// concurrent calls for different videos naturally independent.
type ChatService struct {
	index       driving.IndexService
	llm         driven.LLMService
	promptStore driven.PromptStore
}

// NewChatService creates a new chat service.
func NewChatService(index driving.IndexService, llm driven.LLMService) *ChatService {
	return &ChatService{
		index: index,
		llm:   llm,
	}
}

// SetPromptStore sets the prompt store for loading a customised system
// prompt. If not set, the service uses the hardcoded default.
func (s *ChatService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Chat runs the full pipeline: retrieve, assemble context, generate.
// It never returns an error; every failure becomes a natural-language
// message with empty sources.
func (s *ChatService) Chat(
	ctx context.Context, videoID, message string, history []domain.ConversationTurn,
) (answer string, sources []domain.RetrievalResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("chat pipeline panic: %v", r)
			answer, sources = DegradedMessage, nil
		}
	}()

	if s.index == nil || s.llm == nil {
		logger.Warn("chat unavailable: index or LLM not configured")
		return DegradedMessage, nil
	}

	logger.Section("Chat")
	logger.Debug("video=%s message=%q history=%d turns", videoID, message, len(history))

	results := s.index.Search(ctx, videoID, message, chatTopK)
	if len(results) == 0 {
		logger.Info("no relevant chunks, short-circuiting without model call")
		return NoContextMessage, nil
	}

	messages := s.buildMessages(results, message, history)

	response, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		logger.Error("chat generation failed: %v", err)
		return DegradedMessage, nil
	}

	return strings.TrimSpace(response), results
}

// buildMessages assembles the model conversation: grounding system prompt,
// up to the last six history turns oldest-first, then the new message.
func (s *ChatService) buildMessages(
	results []domain.RetrievalResult, message string, history []domain.ConversationTurn,
) []driven.ChatMessage {
	systemTemplate := defaultChatSystemPrompt
	if s.promptStore != nil {
		if p, err := s.promptStore.Load(driven.PromptChatSystem); err == nil {
			systemTemplate = p
		}
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: fmt.Sprintf(systemTemplate, BuildContext(results))},
	}

	start := 0
	if len(history) > maxHistoryTurns {
		start = len(history) - maxHistoryTurns
	}
	for _, turn := range history[start:] {
		messages = append(messages, driven.ChatMessage{
			Role:    turn.Role.String(),
			Content: turn.Content,
		})
	}

	return append(messages, driven.ChatMessage{Role: "user", Content: message})
}

// BuildContext converts retrieval results into a bounded prompt context:
// each result's text, followed by its source timestamp when known, results
// separated by blank lines in retrieval order. The store already ranked
// them by similarity; there is no re-ranking.
func BuildContext(results []domain.RetrievalResult) string {
	var parts []string
	for _, r := range results {
		parts = append(parts, "Content: "+r.Text)
		if r.Metadata.StartTime != "" {
			parts = append(parts, "Timestamp: "+r.Metadata.StartTime)
		}
	}
	return strings.Join(parts, "\n\n")
}
