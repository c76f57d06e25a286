package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diasm3/customer-cs/internal/keyword"
	"github.com/diasm3/customer-cs/internal/metrics"
)

var (
	analyzeText string
	analyzeJSON bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a query without searching",
	Long: `
Run keyword extraction, categorization and intent detection on a query
without touching the knowledge store. Useful for inspecting how a user
utterance will be transformed before search.

Examples:
  customer-cs analyze -q "심카드 해킹 문제 어떻게 해결하나요?"
  customer-cs analyze -q "refund policy for delayed delivery" --json
`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeText, "query", "q", "", "Text query to analyze (required)")
	analyzeCmd.Flags().BoolVarP(&analyzeJSON, "json", "j", false, "Output analysis in JSON format")

	_ = analyzeCmd.MarkFlagRequired("query")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	analyzer := keyword.NewAnalyzer()
	analysis := analyzer.AnalyzeQuery(analyzeText)

	if err := metrics.Init(); err == nil {
		metrics.RecordSearch(metrics.ModeAnalyze, analysis.DetectedIntent)
	}

	if analyzeJSON {
		encoded, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode analysis: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	}

	fmt.Printf("Query: %s\n", analysis.RawQuery)
	fmt.Printf("Transformed: %s\n", analysis.TransformedQuery)
	fmt.Printf("Intent: %s\n", analysis.DetectedIntent)
	fmt.Printf("Query length: %d\n", analysis.QueryLength)
	fmt.Printf("Complexity: %.2f\n", analysis.ComplexityScore)
	fmt.Printf("Total keywords: %d\n", analysis.TotalKeywords)

	if len(analysis.TopKeywords) > 0 {
		fmt.Println("\nTop keywords:")
		for _, kw := range analysis.TopKeywords {
			fmt.Printf("  %s  freq=%d  importance=%.3f\n", kw.Text, kw.Frequency, kw.Importance)
		}
	}

	if len(analysis.CategorizedKeywords) > 0 {
		fmt.Println("\nCategories:")
		for category, keywords := range analysis.CategorizedKeywords {
			fmt.Printf("  %s:", category)
			for _, kw := range keywords {
				fmt.Printf(" %s", kw.Text)
			}
			fmt.Println()
		}
	}

	return nil
}
