package mcp

import (
	"github.com/recap-labs/recap-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point for dependency wiring.
type Ports struct {
	// Index maintains the per-video retrieval index.
	Index driving.IndexService

	// Chat answers questions about indexed videos.
	Chat driving.ChatService

	// Summary generates cached transcript summaries. Optional; the
	// summarize tool reports an error when absent.
	Summary driving.SummaryService

	// Owner is the credential owner on whose behalf summaries are
	// generated. Defaults to "default".
	Owner string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Index == nil {
		return ErrMissingIndexService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}

// owner returns the configured owner or the default.
func (p *Ports) owner() string {
	if p.Owner == "" {
		return "default"
	}
	return p.Owner
}
