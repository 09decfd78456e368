package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the summary cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show summary cache statistics",
	RunE:  runCacheStats,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	svc, err := summaryServiceForOwner()
	if err != nil {
		return err
	}

	stats, err := svc.CacheStats(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read cache stats: %w", err)
	}

	cmd.Println("Summary Cache")
	cmd.Println("=============")
	cmd.Printf("  Entries: %d\n", stats.Count)
	cmd.Printf("  Size:    %s\n", formatBytes(stats.TotalBytes))
	if len(stats.Styles) > 0 {
		cmd.Print("  Styles:  ")
		for i, style := range stats.Styles {
			if i > 0 {
				cmd.Print(", ")
			}
			cmd.Print(style.String())
		}
		cmd.Println()
	}
	return nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for n/div >= unit && exp < 2 {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMG"[exp])
}
