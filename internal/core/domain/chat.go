package domain

import "time"

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	// RoleUser marks a turn written by the user.
	RoleUser Role = "user"

	// RoleAssistant marks a turn generated by the model.
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// ConversationTurn is a single message in a chat exchange about a video.
// The caller supplies prior turns; the chat service appends the new one.
type ConversationTurn struct {
	// Role is who authored the turn.
	Role Role `json:"role"`

	// Content is the message text.
	Content string `json:"content"`

	// Timestamp is when the turn was produced.
	Timestamp time.Time `json:"timestamp"`
}
