package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diasm3/customer-cs/internal/metrics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cumulative search counts",
	Long: `
Show cumulative search counts recorded locally, broken down by search
mode and by detected intent.

Example:
  customer-cs stats
`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := metrics.Init(); err != nil {
		return fmt.Errorf("failed to open stats store: %w", err)
	}
	defer func() { _ = metrics.Close() }()

	modeStats := metrics.GetStats()
	if modeStats == nil {
		return fmt.Errorf("stats store is not available")
	}

	fmt.Println("Searches by mode:")
	for _, mode := range []metrics.Mode{
		metrics.ModeHybrid,
		metrics.ModeFulltext,
		metrics.ModeVector,
		metrics.ModeFallback,
		metrics.ModeAnalyze,
	} {
		fmt.Printf("  %-10s %d\n", mode, modeStats[mode])
	}

	intentStats := metrics.GetIntentStats()
	if len(intentStats) > 0 {
		fmt.Println("\nSearches by intent:")
		for intent, count := range intentStats {
			fmt.Printf("  %-20s %d\n", intent, count)
		}
	}

	return nil
}
