package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENSEARCH_ENDPOINT", "https://opensearch.example.com")
	t.Setenv("OPENSEARCH_REGION", "ap-northeast-2")
	t.Setenv("OPENAI_API_KEY", "test-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "knowledge-nodes", cfg.OpenSearchIndex)
	require.Equal(t, "openai", cfg.EmbeddingProvider)
	require.Equal(t, "text-embedding-3-small", cfg.OpenAIEmbeddingModel)
	require.Equal(t, 1536, cfg.EmbeddingDimension)
	require.Equal(t, 30, cfg.SearchTimeoutSeconds)
	require.Equal(t, 10.0, cfg.OpenSearchRateLimit)
	require.Equal(t, 20, cfg.OpenSearchRateBurst)
	require.Equal(t, 3, cfg.OpenSearchMaxRetries)
}

func TestLoadRequiresEndpoint(t *testing.T) {
	t.Setenv("OPENSEARCH_ENDPOINT", "")
	t.Setenv("OPENAI_API_KEY", "test-key")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadEndpointScheme(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENSEARCH_ENDPOINT", "ftp://opensearch.example.com")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "scheme")
}

func TestLoadRejectsUnknownEmbeddingProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMBEDDING_PROVIDER", "cohere")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "EMBEDDING_PROVIDER")
}

func TestLoadOpenAIProviderRequiresKey(t *testing.T) {
	t.Setenv("OPENSEARCH_ENDPOINT", "https://opensearch.example.com")
	t.Setenv("OPENSEARCH_REGION", "ap-northeast-2")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoadBedrockProvider(t *testing.T) {
	t.Setenv("OPENSEARCH_ENDPOINT", "https://opensearch.example.com")
	t.Setenv("OPENSEARCH_REGION", "ap-northeast-2")
	t.Setenv("EMBEDDING_PROVIDER", "bedrock")
	t.Setenv("BEDROCK_REGION", "us-east-1")
	t.Setenv("EMBEDDING_DIMENSION", "1024")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "bedrock", cfg.EmbeddingProvider)
	require.Equal(t, 1024, cfg.EmbeddingDimension)
	require.Equal(t, "amazon.titan-embed-text-v2:0", cfg.BedrockModel)
}

func TestLoadClampsSearchTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SEARCH_TIMEOUT_SECONDS", "10000")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 300, cfg.SearchTimeoutSeconds)
}

func TestLoadRejectsExcessiveRateLimit(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENSEARCH_RATE_LIMIT", "5000")

	_, err := Load()
	require.Error(t, err)
}
