package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/diasm3/customer-cs/internal/types"
)

// Client generates embeddings through the OpenAI embeddings API or any
// OpenAI-compatible endpoint.
type Client struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
}

// Config holds the embedding provider settings.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
}

// NewClient creates an OpenAI embedding client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      openai.EmbeddingModel(model),
		dimensions: cfg.Dimensions,
	}, nil
}

// GenerateEmbedding creates an embedding vector from the given text.
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, &types.RetrievalError{
			Type:      types.ErrorTypeValidation,
			Message:   "text cannot be empty",
			Channel:   "vector",
			Timestamp: time.Now(),
		}
	}

	req := openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          c.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if c.dimensions > 0 {
		req.Dimensions = c.dimensions
	}

	start := time.Now()
	resp, err := c.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, parseAPIError(err)
	}

	if len(resp.Data) == 0 {
		return nil, &types.RetrievalError{
			Type:      types.ErrorTypeEmbedding,
			Message:   "empty embedding response",
			Channel:   "vector",
			Timestamp: time.Now(),
		}
	}

	embedding := make([]float64, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		embedding[i] = float64(v)
	}

	log.Printf("Generated OpenAI embedding with %d dimensions in %v", len(embedding), time.Since(start))
	return embedding, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response
// and classifies it for retry decisions upstream.
func parseAPIError(err error) error {
	now := time.Now()

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := extractDetail(reqErr.Body)
		if msg == "" {
			msg = string(reqErr.Body)
		}
		return &types.RetrievalError{
			Type:      classifyStatus(reqErr.HTTPStatusCode),
			Message:   fmt.Sprintf("embedding API error %d: %s", reqErr.HTTPStatusCode, msg),
			Channel:   "vector",
			Timestamp: now,
			Retryable: reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500,
		}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &types.RetrievalError{
			Type:      classifyStatus(apiErr.HTTPStatusCode),
			Message:   fmt.Sprintf("embedding API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message),
			Channel:   "vector",
			Timestamp: now,
			Retryable: apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500,
		}
	}

	return &types.RetrievalError{
		Type:      types.ErrorTypeEmbedding,
		Message:   fmt.Sprintf("embedding request failed: %v", err),
		Channel:   "vector",
		Timestamp: now,
		Retryable: true,
	}
}

func classifyStatus(statusCode int) types.ErrorType {
	switch {
	case statusCode == 429:
		return types.ErrorTypeRateLimit
	case statusCode == 408 || statusCode >= 500:
		return types.ErrorTypeNetworkTimeout
	case statusCode >= 400:
		return types.ErrorTypeValidation
	default:
		return types.ErrorTypeEmbedding
	}
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
