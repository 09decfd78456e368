package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	VideoID  string `json:"video_id" jsonschema:"the video whose transcript to answer from"`
	Question string `json:"question" jsonschema:"the question to answer"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Sources []SourceOutput `json:"sources,omitempty"`
}

// SourceOutput is one retrieved chunk grounding an answer.
type SourceOutput struct {
	ChunkID   string  `json:"chunk_id"`
	Text      string  `json:"text"`
	StartTime string  `json:"start_time,omitempty"`
	Distance  float64 `json:"distance"`
}

// IngestInput is the input schema for the ingest_transcript tool.
type IngestInput struct {
	VideoID    string `json:"video_id" jsonschema:"the video the transcript belongs to"`
	Transcript string `json:"transcript" jsonschema:"the transcript text to index"`
}

// IngestOutput is the output schema for the ingest_transcript tool.
type IngestOutput struct {
	Chunks int `json:"chunks"`
}

// SummarizeInput is the input schema for the summarize tool.
type SummarizeInput struct {
	Transcript string `json:"transcript" jsonschema:"the transcript text to summarize"`
	Style      string `json:"style,omitempty" jsonschema:"summary style: comprehensive, bullet, insights, timeline, qa, or brief (default comprehensive)"`
}

// SummarizeOutput is the output schema for the summarize tool.
type SummarizeOutput struct {
	Summary string `json:"summary"`
	Style   string `json:"style"`
}

// DeleteIndexInput is the input schema for the delete_index tool.
type DeleteIndexInput struct {
	VideoID string `json:"video_id" jsonschema:"the video whose index to delete"`
}

// DeleteIndexOutput is the output schema for the delete_index tool.
type DeleteIndexOutput struct {
	Existed bool `json:"existed"`
}

// CacheStatsInput is the input schema for the cache_stats tool.
type CacheStatsInput struct{}

// CacheStatsOutput is the output schema for the cache_stats tool.
type CacheStatsOutput struct {
	Count      int      `json:"count"`
	TotalBytes int64    `json:"total_bytes"`
	Styles     []string `json:"styles,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question about an indexed video's content",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_transcript",
		Description: "Segment, embed, and index a video transcript",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarize",
		Description: "Summarize a transcript in one of several styles",
	}, s.handleSummarize)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_index",
		Description: "Delete a video's retrieval index",
	}, s.handleDeleteIndex)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cache_stats",
		Description: "Report summary cache statistics",
	}, s.handleCacheStats)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, sources := s.ports.Chat.Chat(ctx, input.VideoID, input.Question, nil)

	output := AskOutput{
		Answer:  answer,
		Sources: make([]SourceOutput, len(sources)),
	}
	for i := range sources {
		output.Sources[i] = SourceOutput{
			ChunkID:   sources[i].ID,
			Text:      sources[i].Text,
			StartTime: sources[i].Metadata.StartTime,
			Distance:  sources[i].Distance,
		}
	}
	return nil, output, nil
}

// handleIngest handles the ingest_transcript tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	count, err := s.ports.Index.Ingest(ctx, input.VideoID, input.Transcript)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, IngestOutput{Chunks: count}, nil
}

// handleSummarize handles the summarize tool invocation.
func (s *Server) handleSummarize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummarizeInput,
) (*mcp.CallToolResult, SummarizeOutput, error) {
	if s.ports.Summary == nil {
		return nil, SummarizeOutput{}, errors.New("mcp: summary service not configured")
	}

	style := domain.ParseStyle(input.Style)
	summary, err := s.ports.Summary.Summarize(ctx, s.ports.owner(), input.Transcript, style)
	if err != nil {
		return nil, SummarizeOutput{}, err
	}
	return nil, SummarizeOutput{Summary: summary, Style: style.String()}, nil
}

// handleDeleteIndex handles the delete_index tool invocation.
func (s *Server) handleDeleteIndex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteIndexInput,
) (*mcp.CallToolResult, DeleteIndexOutput, error) {
	existed, err := s.ports.Index.Delete(ctx, input.VideoID)
	if err != nil {
		return nil, DeleteIndexOutput{}, err
	}
	return nil, DeleteIndexOutput{Existed: existed}, nil
}

// handleCacheStats handles the cache_stats tool invocation.
func (s *Server) handleCacheStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CacheStatsInput,
) (*mcp.CallToolResult, CacheStatsOutput, error) {
	if s.ports.Summary == nil {
		return nil, CacheStatsOutput{}, errors.New("mcp: summary service not configured")
	}

	stats, err := s.ports.Summary.CacheStats(ctx)
	if err != nil {
		return nil, CacheStatsOutput{}, err
	}

	styles := make([]string, len(stats.Styles))
	for i, st := range stats.Styles {
		styles[i] = st.String()
	}
	return nil, CacheStatsOutput{
		Count:      stats.Count,
		TotalBytes: stats.TotalBytes,
		Styles:     styles,
	}, nil
}
