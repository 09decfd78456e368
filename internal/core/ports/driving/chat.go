package driving

import (
	"context"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

// ChatService answers questions about a video's content using retrieval-
// augmented generation.
type ChatService interface {
	// Chat retrieves the chunks most relevant to message, grounds a model
	// prompt in them together with recent conversation turns, and returns
	// the answer plus the retrieval results used as sources.
	//
	// Chat never returns an error: every failure inside the pipeline is
	// converted into a user-facing natural-language message with empty
	// sources. That degradation is deliberate for a chat surface.
	Chat(ctx context.Context, videoID, message string, history []domain.ConversationTurn) (string, []domain.RetrievalResult)
}
