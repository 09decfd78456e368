package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

// mockChatService records the history it is handed.
type mockChatService struct {
	answer      string
	sources     []domain.RetrievalResult
	lastHistory []domain.ConversationTurn
}

func (m *mockChatService) Chat(
	_ context.Context, _, _ string, history []domain.ConversationTurn,
) (string, []domain.RetrievalResult) {
	m.lastHistory = history
	return m.answer, m.sources
}

func newTestApp(t *testing.T, chat *mockChatService) *App {
	t.Helper()
	app, err := NewApp(&Ports{Chat: chat, VideoID: "video-1"})
	require.NoError(t, err)
	return app
}

func TestNewApp(t *testing.T) {
	t.Run("requires chat service", func(t *testing.T) {
		_, err := NewApp(&Ports{VideoID: "video-1"})
		assert.ErrorIs(t, err, ErrMissingChatService)
	})

	t.Run("requires video id", func(t *testing.T) {
		_, err := NewApp(&Ports{Chat: &mockChatService{}})
		assert.ErrorIs(t, err, ErrMissingVideoID)
	})

	t.Run("creates app with valid ports", func(t *testing.T) {
		app, err := NewApp(&Ports{Chat: &mockChatService{}, VideoID: "video-1"})
		require.NoError(t, err)
		assert.NotNil(t, app)
	})
}

func TestApp_SubmitQuestion(t *testing.T) {
	chat := &mockChatService{answer: "The talk covers goroutines."}
	app := newTestApp(t, chat)

	app.input.SetValue("What does the talk cover?")
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)

	require.NotNil(t, cmd)
	assert.True(t, app.Pending())

	// Run the command and feed its message back, as bubbletea would.
	msg := cmd()
	model, _ = app.Update(msg)
	app = model.(*App)

	assert.False(t, app.Pending())
	require.Len(t, app.History(), 2)
	assert.Equal(t, domain.RoleUser, app.History()[0].Role)
	assert.Equal(t, "What does the talk cover?", app.History()[0].Content)
	assert.Equal(t, domain.RoleAssistant, app.History()[1].Role)
	assert.Equal(t, "The talk covers goroutines.", app.History()[1].Content)
}

func TestApp_HistoryGrowsAcrossTurns(t *testing.T) {
	chat := &mockChatService{answer: "answer"}
	app := newTestApp(t, chat)

	for _, q := range []string{"first", "second"} {
		app.input.SetValue(q)
		model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
		app = model.(*App)
		require.NotNil(t, cmd)
		model, _ = app.Update(cmd())
		app = model.(*App)
	}

	assert.Len(t, app.History(), 4)
	// The second question was asked with only the first exchange replayed.
	assert.Len(t, chat.lastHistory, 2)
}

func TestApp_EmptyQuestionIgnored(t *testing.T) {
	app := newTestApp(t, &mockChatService{})

	app.input.SetValue("   ")
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)

	assert.Nil(t, cmd)
	assert.False(t, app.Pending())
}

func TestApp_SubmitWhilePendingIgnored(t *testing.T) {
	app := newTestApp(t, &mockChatService{answer: "slow answer"})

	app.input.SetValue("first")
	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)
	require.True(t, app.Pending())

	app.input.SetValue("second")
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)

	assert.Nil(t, cmd)
	assert.Equal(t, "first", app.pending)
}

func TestApp_QuitKeys(t *testing.T) {
	app := newTestApp(t, &mockChatService{})

	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := app.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestApp_ViewRendersTranscript(t *testing.T) {
	chat := &mockChatService{
		answer: "Concurrency is explained around the five minute mark.",
		sources: []domain.RetrievalResult{
			{
				ID:       "video-1_chunk_2",
				Metadata: domain.ChunkMetadata{StartTime: "00:05:10"},
			},
		},
	}
	app := newTestApp(t, chat)

	app.input.SetValue("Where is concurrency covered?")
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)
	model, _ = app.Update(cmd())
	app = model.(*App)

	view := app.View()
	assert.Contains(t, view, "Chat: video-1")
	assert.Contains(t, view, "Where is concurrency covered?")
	assert.Contains(t, view, "five minute mark")
	assert.Contains(t, view, "video-1_chunk_2")
	assert.Contains(t, view, "00:05:10")
}

func TestApp_ViewEmptySession(t *testing.T) {
	app := newTestApp(t, &mockChatService{})

	view := app.View()

	assert.Contains(t, view, "Ask a question")
	assert.Contains(t, view, "esc: quit")
}
