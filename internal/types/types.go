package types

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error that occurred
type ErrorType string

const (
	ErrorTypeExtraction     ErrorType = "extraction"
	ErrorTypeEmbedding      ErrorType = "embedding_generation"
	ErrorTypeNetworkTimeout ErrorType = "network_timeout"
	ErrorTypeTimeout        ErrorType = "timeout"
	ErrorTypeRateLimit      ErrorType = "rate_limit"
	ErrorTypeValidation     ErrorType = "validation"
	ErrorTypeUnknown        ErrorType = "unknown"
	// Knowledge store specific error types
	ErrorTypeStoreConnection ErrorType = "store_connection"
	ErrorTypeStoreQuery      ErrorType = "store_query"
	ErrorTypeStoreIndex      ErrorType = "store_index"
	ErrorTypeStoreResponse   ErrorType = "store_response"
)

// RetrievalError represents an error raised by the retrieval pipeline
type RetrievalError struct {
	Type      ErrorType `json:"type"`
	Message   string    `json:"message"`
	Channel   string    `json:"channel,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Retryable bool      `json:"retryable"`
}

// Error implements the error interface for RetrievalError
func (re *RetrievalError) Error() string {
	if re.Channel != "" {
		return fmt.Sprintf("[%s] %s (channel: %s)", re.Type, re.Message, re.Channel)
	}
	return fmt.Sprintf("[%s] %s", re.Type, re.Message)
}

// IsRetryable returns whether this error type should be retried
func (re *RetrievalError) IsRetryable() bool {
	return re.Retryable
}

// Config represents the retrieval service configuration
type Config struct {
	// OpenSearch knowledge store configuration
	OpenSearchEndpoint          string        `json:"opensearch_endpoint" env:"OPENSEARCH_ENDPOINT,required=true"`
	OpenSearchRegion            string        `json:"opensearch_region" env:"OPENSEARCH_REGION,default=us-east-1"`
	OpenSearchIndex             string        `json:"opensearch_index" env:"OPENSEARCH_INDEX,default=knowledge-nodes"`
	OpenSearchInsecureSkipTLS   bool          `json:"opensearch_insecure_skip_tls" env:"OPENSEARCH_INSECURE_SKIP_TLS,default=false"`
	OpenSearchRateLimit         float64       `json:"opensearch_rate_limit" env:"OPENSEARCH_RATE_LIMIT,default=10.0"`
	OpenSearchRateBurst         int           `json:"opensearch_rate_burst" env:"OPENSEARCH_RATE_BURST,default=20"`
	OpenSearchConnectionTimeout time.Duration `json:"opensearch_connection_timeout" env:"OPENSEARCH_CONNECTION_TIMEOUT,default=30s"`
	OpenSearchRequestTimeout    time.Duration `json:"opensearch_request_timeout" env:"OPENSEARCH_REQUEST_TIMEOUT,default=60s"`
	OpenSearchMaxRetries        int           `json:"opensearch_max_retries" env:"OPENSEARCH_MAX_RETRIES,default=3"`
	OpenSearchRetryDelay        time.Duration `json:"opensearch_retry_delay" env:"OPENSEARCH_RETRY_DELAY,default=1s"`
	OpenSearchMaxConnections    int           `json:"opensearch_max_connections" env:"OPENSEARCH_MAX_CONNECTIONS,default=100"`
	OpenSearchMaxIdleConns      int           `json:"opensearch_max_idle_conns" env:"OPENSEARCH_MAX_IDLE_CONNS,default=10"`
	OpenSearchIdleConnTimeout   time.Duration `json:"opensearch_idle_conn_timeout" env:"OPENSEARCH_IDLE_CONN_TIMEOUT,default=90s"`

	// Embedding service configuration
	EmbeddingProvider    string `json:"embedding_provider" env:"EMBEDDING_PROVIDER,default=openai"`
	OpenAIAPIKey         string `json:"openai_api_key" env:"OPENAI_API_KEY"`
	OpenAIBaseURL        string `json:"openai_base_url" env:"OPENAI_BASE_URL"`
	OpenAIEmbeddingModel string `json:"openai_embedding_model" env:"OPENAI_EMBEDDING_MODEL,default=text-embedding-3-small"`
	EmbeddingDimension   int    `json:"embedding_dimension" env:"EMBEDDING_DIMENSION,default=1536"`
	BedrockRegion        string `json:"bedrock_region" env:"BEDROCK_REGION,default=us-east-1"`
	BedrockModel         string `json:"bedrock_model" env:"BEDROCK_MODEL,default=amazon.titan-embed-text-v2:0"`

	// Retrieval defaults
	SearchTimeoutSeconds int `json:"search_timeout_seconds" env:"SEARCH_TIMEOUT_SECONDS,default=30"`

	// OpenTelemetry configuration
	OTelEnabled              bool    `json:"otel_enabled" env:"OTEL_ENABLED,default=false"`
	OTelServiceName          string  `json:"otel_service_name" env:"OTEL_SERVICE_NAME,default=customer-cs"`
	OTelExporterOTLPEndpoint string  `json:"otel_exporter_otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelExporterOTLPProtocol string  `json:"otel_exporter_otlp_protocol" env:"OTEL_EXPORTER_OTLP_PROTOCOL,default=http/protobuf"`
	OTelResourceAttributes   string  `json:"otel_resource_attributes" env:"OTEL_RESOURCE_ATTRIBUTES"`
	OTelTracesSampler        string  `json:"otel_traces_sampler" env:"OTEL_TRACES_SAMPLER,default=always_on"`
	OTelTracesSamplerArg     float64 `json:"otel_traces_sampler_arg" env:"OTEL_TRACES_SAMPLER_ARG,default=1.0"`
}
