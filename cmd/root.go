package cmd

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	appconfig "github.com/diasm3/customer-cs/internal/config"
	"github.com/diasm3/customer-cs/internal/embedding/bedrock"
	"github.com/diasm3/customer-cs/internal/embedding/openai"
	"github.com/diasm3/customer-cs/internal/metrics"
	"github.com/diasm3/customer-cs/internal/opensearch"
	"github.com/diasm3/customer-cs/internal/search"
	commontypes "github.com/diasm3/customer-cs/internal/types"
)

var rootCmd = &cobra.Command{
	Use:   "customer-cs",
	Short: "Hybrid knowledge retrieval for customer service role-play",
	Long: `customer-cs retrieves reference knowledge for customer service
role-play conversations. User queries are analyzed for Korean and
English keywords, expanded with domain synonyms, and searched against
an OpenSearch knowledge index over two channels (lexical + vector)
whose results are fused into a single ranked context list.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(createIndexCmd)
	rootCmd.AddCommand(statsCmd)
}

// loadConfig reads .env if present, then resolves configuration from
// the environment.
func loadConfig() (*commontypes.Config, error) {
	_ = godotenv.Load()

	cfg, err := appconfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newStoreClient builds the OpenSearch knowledge store client.
func newStoreClient(cfg *commontypes.Config) (*opensearch.Client, error) {
	osConfig, err := opensearch.NewConfigFromTypes(cfg)
	if err != nil {
		return nil, err
	}
	if err := osConfig.Validate(); err != nil {
		return nil, fmt.Errorf("OpenSearch config validation failed: %w", err)
	}
	return opensearch.NewClient(osConfig)
}

// newEmbedder builds the embedding client for the configured provider.
func newEmbedder(cfg *commontypes.Config) (search.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case "openai":
		return openai.GetSharedClient(&openai.Config{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			Model:      cfg.OpenAIEmbeddingModel,
			Dimensions: cfg.EmbeddingDimension,
		})
	case "bedrock":
		awsConfig, err := config.LoadDefaultConfig(context.Background(),
			config.WithRegion(cfg.BedrockRegion))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
		}
		return bedrock.GetSharedClient(awsConfig, cfg.BedrockModel, cfg.EmbeddingDimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider %q", cfg.EmbeddingProvider)
	}
}

// newRetriever wires the full retrieval pipeline from configuration.
func newRetriever(cfg *commontypes.Config) (*search.Retriever, error) {
	store, err := newStoreClient(cfg)
	if err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	retriever := search.NewRetriever(store, embedder, cfg.OpenSearchIndex)
	retriever.SetUsageRecorder(metrics.RecordSearch)
	return retriever, nil
}
