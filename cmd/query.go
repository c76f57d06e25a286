package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/diasm3/customer-cs/internal/metrics"
	"github.com/diasm3/customer-cs/internal/observability"
	"github.com/diasm3/customer-cs/internal/types"
)

var (
	queryText  string
	searchMode string
	outputJSON bool
	timeout    int
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search the knowledge index with hybrid retrieval",
	Long: `
Search the knowledge index for customer service reference material.
Supports three search modes:
- hybrid: keyword-driven lexical + vector search with fusion (default)
- fulltext: lexical channel only
- vector: semantic channel only

Examples:
  # Hybrid search (default)
  customer-cs query -q "심카드 해킹 문제 어떻게 해결하나요?"

  # Lexical channel only
  customer-cs query -q "유심 재발급 비용" --mode fulltext

  # JSON output with analysis
  customer-cs query -q "배송 지연 환불" --json
`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "Text query to search for (required)")
	queryCmd.Flags().StringVar(&searchMode, "mode", "hybrid", "Search mode: hybrid|fulltext|vector")
	queryCmd.Flags().BoolVarP(&outputJSON, "json", "j", false, "Output results in JSON format")
	queryCmd.Flags().IntVar(&timeout, "timeout", 0, "Request timeout in seconds (defaults to config)")

	_ = queryCmd.MarkFlagRequired("query")
}

type queryOutput struct {
	Analysis *types.QueryAnalysis `json:"analysis"`
	Results  []types.SearchResult `json:"results"`
	Duration string               `json:"duration"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	shutdown, err := observability.Init(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("observability shutdown failed: %v", err)
		}
	}()

	if err := metrics.Init(); err != nil {
		log.Printf("metrics store unavailable, counts will not be recorded: %v", err)
	}

	timeoutSeconds := timeout
	if timeoutSeconds <= 0 {
		timeoutSeconds = cfg.SearchTimeoutSeconds
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	retriever, err := newRetriever(cfg)
	if err != nil {
		return err
	}

	log.Printf("Starting %s search for: %s", searchMode, queryText)
	start := time.Now()

	analysis := retriever.Analyzer().AnalyzeQuery(queryText)

	var results []types.SearchResult
	switch searchMode {
	case "hybrid":
		results, err = retriever.HybridSearch(ctx, queryText)
		metrics.RecordSearch(metrics.ModeHybrid, analysis.DetectedIntent)
	case "fulltext":
		results, err = retriever.FulltextSearch(ctx, queryText)
		metrics.RecordSearch(metrics.ModeFulltext, analysis.DetectedIntent)
	case "vector":
		results = retriever.VectorSearch(ctx, queryText)
		metrics.RecordSearch(metrics.ModeVector, analysis.DetectedIntent)
	default:
		return fmt.Errorf("unsupported search mode %q (expected hybrid|fulltext|vector)", searchMode)
	}
	if err != nil {
		return fmt.Errorf("%s search failed: %w", searchMode, err)
	}

	duration := time.Since(start)

	if outputJSON {
		out := queryOutput{
			Analysis: analysis,
			Results:  results,
			Duration: duration.String(),
		}
		encoded, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	}

	printAnalysis(analysis)
	printResults(results, duration)
	return nil
}

func printAnalysis(analysis *types.QueryAnalysis) {
	fmt.Printf("Query: %s\n", analysis.RawQuery)
	fmt.Printf("Transformed: %s\n", analysis.TransformedQuery)
	fmt.Printf("Intent: %s\n", analysis.DetectedIntent)
	if len(analysis.TopKeywords) > 0 {
		fmt.Print("Top keywords:")
		for _, kw := range analysis.TopKeywords {
			fmt.Printf(" %s(%.2f)", kw.Text, kw.Importance)
		}
		fmt.Println()
	}
	fmt.Println()
}

func printResults(results []types.SearchResult, duration time.Duration) {
	if len(results) == 0 {
		fmt.Println("No results found.")
		return
	}

	fmt.Printf("Found %d results in %v:\n\n", len(results), duration)
	for i, r := range results {
		fmt.Printf("%d. [%s] %s (score: %.4f)\n", i+1, r.SearchType, r.Title, r.FinalScore)
		fmt.Printf("   %s\n\n", r.Content)
	}
}
