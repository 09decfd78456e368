package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [video-id] [file]",
	Short: "Index a video transcript",
	Long: `Segments a transcript into sentence-aligned chunks, embeds them, and
stores them in the video's retrieval index.

Reads the transcript from the given file, or from stdin when no file is
given. Re-ingesting the same video replaces its chunks instead of
accumulating duplicates.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	videoID := args[0]
	transcript, err := readTranscript(cmd, args, 1)
	if err != nil {
		return err
	}

	count, err := indexService.Ingest(context.Background(), videoID, transcript)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Indexed %d chunks for video %s.\n", count, videoID)
	return nil
}

// readTranscript returns the contents of args[idx] when present, otherwise
// everything on stdin. "-" also selects stdin.
func readTranscript(cmd *cobra.Command, args []string, idx int) (string, error) {
	if len(args) > idx && args[idx] != "-" {
		data, err := os.ReadFile(args[idx])
		if err != nil {
			return "", fmt.Errorf("reading transcript: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading transcript from stdin: %w", err)
	}
	return string(data), nil
}
