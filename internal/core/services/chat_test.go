package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

func sampleResults() []domain.RetrievalResult {
	return []domain.RetrievalResult{
		{
			ID:   "video-1_chunk_0",
			Text: "The speaker explains gradient descent",
			Metadata: domain.ChunkMetadata{
				VideoID:    "video-1",
				ChunkIndex: 0,
				StartTime:  "00:01:30",
			},
			Distance: 0.1,
		},
		{
			ID:   "video-1_chunk_3",
			Text: "Learning rates control convergence speed",
			Metadata: domain.ChunkMetadata{
				VideoID:    "video-1",
				ChunkIndex: 3,
			},
			Distance: 0.4,
		},
	}
}

// TestChatAnswersWithSources verifies the happy path returns the model
// answer together with its grounding chunks.
func TestChatAnswersWithSources(t *testing.T) {
	llm := &mockLLM{response: "Gradient descent minimises the loss."}
	svc := NewChatService(&mockIndex{results: sampleResults()}, llm)

	answer, sources := svc.Chat(context.Background(), "video-1", "What is gradient descent?", nil)

	assert.Equal(t, "Gradient descent minimises the loss.", answer)
	require.Len(t, sources, 2)
	assert.Equal(t, "video-1_chunk_0", sources[0].ID)
	assert.Equal(t, 1, llm.calls())
}

// TestChatNoContextShortCircuits verifies that empty retrieval returns the
// canned no-context message without ever calling the model.
func TestChatNoContextShortCircuits(t *testing.T) {
	llm := &mockLLM{}
	svc := NewChatService(&mockIndex{}, llm)

	answer, sources := svc.Chat(context.Background(), "video-1", "anything?", nil)

	assert.Equal(t, NoContextMessage, answer)
	assert.Empty(t, sources)
	assert.Zero(t, llm.calls())
}

// TestChatDegradesOnModelFailure verifies the apologetic fallback when
// generation fails.
func TestChatDegradesOnModelFailure(t *testing.T) {
	llm := &mockLLM{err: errors.New("rate limited")}
	svc := NewChatService(&mockIndex{results: sampleResults()}, llm)

	answer, sources := svc.Chat(context.Background(), "video-1", "question", nil)

	assert.Equal(t, DegradedMessage, answer)
	assert.Empty(t, sources)
}

// TestChatMessageAssembly verifies the conversation sent to the model:
// system prompt with embedded context, history oldest-first, then the new
// user message.
func TestChatMessageAssembly(t *testing.T) {
	llm := &mockLLM{}
	svc := NewChatService(&mockIndex{results: sampleResults()}, llm)

	history := []domain.ConversationTurn{
		{Role: domain.RoleUser, Content: "first question"},
		{Role: domain.RoleAssistant, Content: "first answer"},
	}
	svc.Chat(context.Background(), "video-1", "follow-up", history)

	msgs := llm.lastMsgs
	require.Len(t, msgs, 4)

	assert.Equal(t, "system", msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "The speaker explains gradient descent")
	assert.Contains(t, msgs[0].Content, "00:01:30")

	assert.Equal(t, "user", msgs[1].Role)
	assert.Equal(t, "first question", msgs[1].Content)
	assert.Equal(t, "assistant", msgs[2].Role)
	assert.Equal(t, "first answer", msgs[2].Content)

	assert.Equal(t, "user", msgs[3].Role)
	assert.Equal(t, "follow-up", msgs[3].Content)
}

// TestChatHistoryTruncation verifies only the trailing turns are replayed
// when the history is long.
func TestChatHistoryTruncation(t *testing.T) {
	llm := &mockLLM{}
	svc := NewChatService(&mockIndex{results: sampleResults()}, llm)

	var history []domain.ConversationTurn
	for i := 0; i < 10; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		history = append(history, domain.ConversationTurn{
			Role:    role,
			Content: fmt.Sprintf("turn %d", i),
		})
	}
	svc.Chat(context.Background(), "video-1", "latest", history)

	// system + 6 history turns + new message.
	msgs := llm.lastMsgs
	require.Len(t, msgs, 1+maxHistoryTurns+1)
	assert.Equal(t, "turn 4", msgs[1].Content)
	assert.Equal(t, "turn 9", msgs[maxHistoryTurns].Content)
	assert.Equal(t, "latest", msgs[len(msgs)-1].Content)
}

// TestBuildContext verifies the prompt context layout: content lines with
// timestamps when known, results separated by blank lines in retrieval
// order.
func TestBuildContext(t *testing.T) {
	ctx := BuildContext(sampleResults())

	assert.True(t, strings.HasPrefix(ctx, "Content: The speaker explains gradient descent"))
	assert.Contains(t, ctx, "Timestamp: 00:01:30")

	// The second result has no timestamp, so exactly one appears.
	assert.Equal(t, 1, strings.Count(ctx, "Timestamp:"))

	first := strings.Index(ctx, "gradient descent")
	second := strings.Index(ctx, "Learning rates")
	assert.Less(t, first, second)
}

// TestBuildContextEmpty verifies empty retrieval yields an empty context.
func TestBuildContextEmpty(t *testing.T) {
	assert.Empty(t, BuildContext(nil))
}

// TestChatNilDependencies verifies a misconfigured service degrades
// instead of panicking.
func TestChatNilDependencies(t *testing.T) {
	svc := NewChatService(nil, nil)

	answer, sources := svc.Chat(context.Background(), "video-1", "question", nil)
	assert.Equal(t, DegradedMessage, answer)
	assert.Empty(t, sources)
}
