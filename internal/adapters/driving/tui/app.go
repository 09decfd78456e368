package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/recap-labs/recap-cli/internal/adapters/driving/tui/styles"
	"github.com/recap-labs/recap-cli/internal/core/domain"
)

// exchange is one completed question/answer pair in the transcript.
type exchange struct {
	question string
	answer   string
	sources  []domain.RetrievalResult
}

// answerReceived is delivered when the chat pipeline finishes a question.
type answerReceived struct {
	question string
	answer   string
	sources  []domain.RetrievalResult
}

// App is the chat session TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// input is the question input field.
	input textinput.Model

	// history is the conversation replayed to the model on each turn.
	history []domain.ConversationTurn

	// exchanges is the rendered transcript.
	exchanges []exchange

	// pending is the question currently being answered, empty when idle.
	pending string

	// chunkCount is the size of the video's index, -1 when unknown.
	chunkCount int

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its dimensions.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat session for the configured video.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	ti := textinput.New()
	ti.Placeholder = "Ask about the video..."
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     styles.DefaultStyles(),
		input:      ti,
		chunkCount: -1,
		width:      80,
		height:     24,
	}, nil
}

// WithContext sets the context for the session.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init initialises the app.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.loadChunkCount())
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		inputWidth := msg.Width - 8
		if inputWidth < 20 {
			inputWidth = 20
		}
		a.input.Width = inputWidth
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case answerReceived:
		a.pending = ""
		a.exchanges = append(a.exchanges, exchange{
			question: msg.question,
			answer:   msg.answer,
			sources:  msg.sources,
		})
		now := time.Now()
		a.history = append(a.history,
			domain.ConversationTurn{Role: domain.RoleUser, Content: msg.question, Timestamp: now},
			domain.ConversationTurn{Role: domain.RoleAssistant, Content: msg.answer, Timestamp: now},
		)
		return a, nil

	case chunkCountLoaded:
		a.chunkCount = msg.count
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return a, tea.Quit

	case tea.KeyEnter:
		// Ignore submissions while an answer is in flight; the history
		// sent to the model must stay in lockstep with the transcript.
		if a.pending != "" {
			return a, nil
		}
		question := strings.TrimSpace(a.input.Value())
		if question == "" {
			return a, nil
		}
		a.pending = question
		a.input.Reset()
		return a, a.ask(question, a.history)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// ask runs the chat pipeline off the update loop.
func (a *App) ask(question string, history []domain.ConversationTurn) tea.Cmd {
	return func() tea.Msg {
		answer, sources := a.ports.Chat.Chat(a.ctx, a.ports.VideoID, question, history)
		return answerReceived{question: question, answer: answer, sources: sources}
	}
}

// chunkCountLoaded is delivered once the index size is known.
type chunkCountLoaded struct {
	count int
}

func (a *App) loadChunkCount() tea.Cmd {
	if a.ports.Index == nil {
		return nil
	}
	return func() tea.Msg {
		count, err := a.ports.Index.Count(a.ctx, a.ports.VideoID)
		if err != nil {
			return chunkCountLoaded{count: -1}
		}
		return chunkCountLoaded{count: count}
	}
}

// View renders the session.
func (a *App) View() string {
	var b strings.Builder

	header := fmt.Sprintf("Chat: %s", a.ports.VideoID)
	if a.chunkCount >= 0 {
		header = fmt.Sprintf("%s (%d chunks indexed)", header, a.chunkCount)
	}
	b.WriteString(a.styles.Title.Render(header))
	b.WriteString("\n\n")

	if len(a.exchanges) == 0 && a.pending == "" {
		b.WriteString(a.styles.Muted.Render("Ask a question to get started."))
		b.WriteString("\n")
	}

	for i := range a.exchanges {
		b.WriteString(a.renderExchange(&a.exchanges[i]))
	}

	if a.pending != "" {
		b.WriteString(a.styles.Question.Render("You: " + a.pending))
		b.WriteString("\n")
		b.WriteString(a.styles.Muted.Render("Thinking..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.InputField.Render(a.input.View()))
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("enter: send • esc: quit"))

	return b.String()
}

func (a *App) renderExchange(e *exchange) string {
	var b strings.Builder

	b.WriteString(a.styles.Question.Render("You: " + e.question))
	b.WriteString("\n")
	b.WriteString(a.styles.Answer.Render(e.answer))
	b.WriteString("\n")

	for i := range e.sources {
		line := fmt.Sprintf("[%d] %s", i+1, e.sources[i].ID)
		if ts := e.sources[i].Metadata.StartTime; ts != "" {
			line += " @ " + ts
		}
		b.WriteString(a.styles.Source.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return b.String()
}

// History returns the conversation turns accumulated so far.
func (a *App) History() []domain.ConversationTurn {
	return a.history
}

// Pending reports whether a question is awaiting its answer.
func (a *App) Pending() bool {
	return a.pending != ""
}
