package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

var (
	summarizeStyle string
	summarizeOwner string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarise a transcript",
	Long: `Generates a summary of a transcript in the chosen style.

Reads the transcript from the given file, or from stdin when no file is
given. Summaries are cached by content: summarising the same transcript
in the same style again returns instantly without calling the model.

Available styles:
  comprehensive - Full prose summary covering all key points (default)
  bullet        - Bullet-point list of main points and takeaways
  insights      - Key learnings and actionable takeaways
  timeline      - Chronological walk through the content
  qa            - Question and answer format
  brief         - A few sentences capturing the essence`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeStyle, "style", "s", "comprehensive", "summary style")
	summarizeCmd.Flags().StringVar(&summarizeOwner, "owner", "", "resolve credentials for this owner instead of the configured one")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	owner := summarizeOwner
	if owner == "" {
		owner = effectiveOwner()
	}

	svc, err := summaryServiceFor(owner)
	if err != nil {
		return err
	}

	transcript, err := readTranscript(cmd, args, 0)
	if err != nil {
		return err
	}

	style := domain.ParseStyle(summarizeStyle)
	summary, err := svc.Summarize(context.Background(), owner, transcript, style)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyTranscript):
			return errors.New("the transcript is empty")
		case errors.Is(err, domain.ErrNoCredential):
			return fmt.Errorf("no credential found for the configured provider; run 'recap credentials set' first: %w", err)
		default:
			return fmt.Errorf("summarisation failed: %w", err)
		}
	}

	cmd.Println(summary)
	return nil
}
