package mcp

import (
	"context"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	count    int
	results  []domain.RetrievalResult
	existed  bool
	err      error
	ingested map[string]string
}

func (m *mockIndexService) Ingest(_ context.Context, videoID, transcript string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.ingested == nil {
		m.ingested = make(map[string]string)
	}
	m.ingested[videoID] = transcript
	return m.count, nil
}

func (m *mockIndexService) Search(_ context.Context, _, _ string, _ int) []domain.RetrievalResult {
	return m.results
}

func (m *mockIndexService) Delete(_ context.Context, _ string) (bool, error) {
	return m.existed, m.err
}

func (m *mockIndexService) Count(_ context.Context, _ string) (int, error) {
	return m.count, m.err
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	answer  string
	sources []domain.RetrievalResult
}

func (m *mockChatService) Chat(
	_ context.Context, _, _ string, _ []domain.ConversationTurn,
) (string, []domain.RetrievalResult) {
	return m.answer, m.sources
}

// mockSummaryService is a mock implementation of driving.SummaryService.
type mockSummaryService struct {
	summary   string
	stats     domain.CacheStats
	err       error
	lastOwner string
	lastStyle domain.SummaryStyle
}

func (m *mockSummaryService) Summarize(
	_ context.Context, ownerID, _ string, style domain.SummaryStyle,
) (string, error) {
	m.lastOwner = ownerID
	m.lastStyle = style
	if m.err != nil {
		return "", m.err
	}
	return m.summary, nil
}

func (m *mockSummaryService) CacheStats(_ context.Context) (domain.CacheStats, error) {
	return m.stats, m.err
}
