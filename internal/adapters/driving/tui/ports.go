// Package tui provides an interactive chat session for a single video.
// It implements a driving adapter following hexagonal architecture
// principles.
package tui

import (
	"github.com/recap-labs/recap-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the chat TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers questions about the video.
	Chat driving.ChatService

	// Index reports how many chunks are indexed for the video. Optional;
	// used only for the session header.
	Index driving.IndexService

	// VideoID is the video the session is scoped to.
	VideoID string
}

// Validate ensures all required ports are set.
// Returns an error if any required port is missing.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.VideoID == "" {
		return ErrMissingVideoID
	}
	return nil
}
