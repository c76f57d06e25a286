package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/diasm3/customer-cs/internal/types"
)

// Client generates embeddings with AWS Bedrock Titan models.
type Client struct {
	client    *bedrockruntime.Client
	modelID   string
	region    string
	dimension int
}

// TitanEmbeddingRequest represents the request structure for Titan embedding models
type TitanEmbeddingRequest struct {
	InputText  string `json:"inputText"`
	Dimensions int    `json:"dimensions,omitempty"`
	Normalize  bool   `json:"normalize,omitempty"`
}

// TitanEmbeddingResponse represents the response structure from Titan embedding models
type TitanEmbeddingResponse struct {
	Embedding           []float64 `json:"embedding"`
	InputTextTokenCount int       `json:"inputTextTokenCount"`
}

// NewClient creates a Bedrock embedding client.
func NewClient(awsConfig aws.Config, modelID string, dimension int) *Client {
	client := bedrockruntime.NewFromConfig(awsConfig)

	if modelID == "" {
		modelID = "amazon.titan-embed-text-v2:0"
	}
	if dimension <= 0 {
		dimension = 1024
	}

	return &Client{
		client:    client,
		modelID:   modelID,
		region:    awsConfig.Region,
		dimension: dimension,
	}
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

	request := TitanEmbeddingRequest{
		InputText:  text,
		Dimensions: c.dimension,
		Normalize:  true,
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	input := &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        requestBody,
	}

	start := time.Now()
	output, err := c.client.InvokeModel(ctx, input)
	if err != nil {
		return nil, classifyInvokeError(err)
	}

	var response TitanEmbeddingResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(response.Embedding) == 0 {
		return nil, &types.RetrievalError{
			Type:      types.ErrorTypeEmbedding,
			Message:   "empty embedding response",
			Channel:   "vector",
			Timestamp: time.Now(),
		}
	}

	log.Printf("Generated Bedrock embedding with %d dimensions in %v (model: %s)",
		len(response.Embedding), time.Since(start), c.modelID)
	return response.Embedding, nil
}

func classifyInvokeError(err error) error {
	errMsg := err.Error()
	now := time.Now()

	errType := types.ErrorTypeEmbedding
	retryable := false

	switch {
	case strings.Contains(errMsg, "ThrottlingException") || strings.Contains(errMsg, "TooManyRequests"):
		errType = types.ErrorTypeRateLimit
		retryable = true
	case strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "Timeout"):
		errType = types.ErrorTypeNetworkTimeout
		retryable = true
	case strings.Contains(errMsg, "ValidationException"):
		errType = types.ErrorTypeValidation
	}

	return &types.RetrievalError{
		Type:      errType,
		Message:   fmt.Sprintf("bedrock invoke failed: %v", err),
		Channel:   "vector",
		Timestamp: now,
		Retryable: retryable,
	}
}
