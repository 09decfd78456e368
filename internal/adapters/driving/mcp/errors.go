// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants ingest video transcripts, ask questions about
// them, and request summaries over the local index.
package mcp

import "errors"

// Sentinel errors for missing required ports.
var (
	// ErrMissingIndexService is returned when the index service is not provided.
	ErrMissingIndexService = errors.New("mcp: index service is required")

	// ErrMissingChatService is returned when the chat service is not provided.
	ErrMissingChatService = errors.New("mcp: chat service is required")
)
