package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage per-video retrieval indexes",
}

var indexStatusCmd = &cobra.Command{
	Use:   "status [video-id]",
	Short: "Show how many chunks are indexed for a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexStatus,
}

var indexDeleteCmd = &cobra.Command{
	Use:   "delete [video-id]",
	Short: "Delete a video's index",
	Long:  `Removes all indexed chunks for a video. The transcript itself is untouched; re-ingest to rebuild the index.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexDelete,
}

func init() {
	indexCmd.AddCommand(indexStatusCmd)
	indexCmd.AddCommand(indexDeleteCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexStatus(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	videoID := args[0]
	count, err := indexService.Count(context.Background(), videoID)
	if err != nil {
		return fmt.Errorf("failed to read index: %w", err)
	}

	if count == 0 {
		cmd.Printf("No chunks indexed for video %s.\n", videoID)
		return nil
	}
	cmd.Printf("Video %s: %d chunks indexed.\n", videoID, count)
	return nil
}

func runIndexDelete(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	videoID := args[0]
	existed, err := indexService.Delete(context.Background(), videoID)
	if err != nil {
		return fmt.Errorf("failed to delete index: %w", err)
	}

	if !existed {
		cmd.Printf("No index found for video %s.\n", videoID)
		return nil
	}
	cmd.Printf("Deleted index for video %s.\n", videoID)
	return nil
}
