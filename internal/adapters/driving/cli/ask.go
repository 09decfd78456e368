package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/recap-labs/recap-cli/internal/adapters/driving/tui"
)

var askInteractive bool

var askCmd = &cobra.Command{
	Use:   "ask [video-id] [question]",
	Short: "Ask a question about an indexed video",
	Long: `Answers a question about a video using its indexed transcript.

The answer is grounded in the most relevant transcript chunks, which are
listed as sources with their timestamps.

Use --interactive to start a chat session instead of asking a single
question:

  recap ask my-video "What is the main argument?"
  recap ask my-video -i`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVarP(&askInteractive, "interactive", "i", false, "start an interactive chat session")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	videoID := args[0]

	if askInteractive {
		return runChatSession(cmd, videoID)
	}

	if len(args) < 2 {
		return errors.New("provide a question, or use --interactive for a chat session")
	}

	answer, sources := chatService.Chat(context.Background(), videoID, args[1], nil)

	cmd.Println(answer)
	if len(sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i := range sources {
			line := fmt.Sprintf("  [%d] %s", i+1, sources[i].ID)
			if ts := sources[i].Metadata.StartTime; ts != "" {
				line += " @ " + ts
			}
			cmd.Println(line)
		}
	}
	return nil
}

func runChatSession(cmd *cobra.Command, videoID string) error {
	// Panic recovery keeps a stack trace visible when the terminal is
	// restored from the alt screen.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat session: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(&tui.Ports{
		Chat:    chatService,
		Index:   indexService,
		VideoID: videoID,
	})
	if err != nil {
		return fmt.Errorf("starting chat session: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat session error: %w", err)
	}
	return nil
}
