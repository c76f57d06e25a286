package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
)

var createIndexTimeout int

var createIndexCmd = &cobra.Command{
	Use:   "create-index",
	Short: "Create the knowledge index in OpenSearch",
	Long: `
Create the knowledge index with Korean text analysis (nori) on title
and content fields and a knn_vector embedding field sized from
EMBEDDING_DIMENSION.

Example:
  customer-cs create-index
`,
	RunE: runCreateIndex,
}

func init() {
	createIndexCmd.Flags().IntVar(&createIndexTimeout, "timeout", 60, "Request timeout in seconds")
}

func runCreateIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(createIndexTimeout)*time.Second)
	defer cancel()

	client, err := newStoreClient(cfg)
	if err != nil {
		return err
	}

	if err := client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("OpenSearch health check failed: %w", err)
	}

	log.Printf("Creating knowledge index %q with dimension %d", cfg.OpenSearchIndex, cfg.EmbeddingDimension)

	if err := client.CreateKnowledgeIndex(ctx, cfg.OpenSearchIndex, cfg.EmbeddingDimension); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	fmt.Printf("Index %q created.\n", cfg.OpenSearchIndex)
	return nil
}
