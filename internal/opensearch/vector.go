package opensearch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"

	"github.com/diasm3/customer-cs/internal/types"
)

// VectorQuery describes a k-NN search against the embedding field of
// the knowledge index.
type VectorQuery struct {
	Vector      []float64 `json:"vector"`
	VectorField string    `json:"vector_field"`
	K           int       `json:"k"`
	EfSearch    int       `json:"ef_search,omitempty"`
	Size        int       `json:"size,omitempty"`
}

func (c *Client) SearchVector(ctx context.Context, indexName string, query *VectorQuery) ([]types.StoreHit, error) {
	if query == nil {
		return nil, NewSearchError(types.ErrorTypeValidation, "query cannot be nil")
	}

	if len(query.Vector) == 0 {
		return nil, NewSearchError(types.ErrorTypeValidation, "vector cannot be empty")
	}

	if query.VectorField == "" {
		query.VectorField = "embedding"
	}
	if query.K <= 0 {
		query.K = 3
	}
	if query.K > 10000 {
		query.K = 10000
	}
	if query.Size <= 0 {
		query.Size = query.K
	}
	if query.Size > 1000 {
		query.Size = 1000
	}
	if query.EfSearch <= 0 {
		query.EfSearch = query.K * 2
	}

	startTime := time.Now()
	var hits []types.StoreHit

	operation := func() error {
		if err := c.WaitForRateLimit(ctx); err != nil {
			return fmt.Errorf("rate limit error: %w", err)
		}

		searchBody := buildVectorSearchBody(query)
		bodyJSON, err := json.Marshal(searchBody)
		if err != nil {
			return NewSearchError(types.ErrorTypeValidation, fmt.Sprintf("failed to marshal search body: %v", err))
		}

		req := &opensearchapi.SearchReq{
			Indices: []string{indexName},
			Body:    strings.NewReader(string(bodyJSON)),
		}

		searchResp, err := c.client.Search(ctx, req)
		if err != nil {
			return ClassifyStoreError(err)
		}

		if searchResp == nil {
			return NewSearchError(types.ErrorTypeStoreResponse, "received nil response from OpenSearch")
		}

		hits = decodeHits(searchResp)
		return nil
	}

	err := c.ExecuteWithRetry(ctx, operation, "VectorSearch")

	duration := time.Since(startTime)
	c.RecordRequest(duration, err == nil)

	if err == nil {
		log.Printf("Vector search completed in %v, found %d results", duration, len(hits))
	}

	return hits, err
}

func buildVectorSearchBody(query *VectorQuery) map[string]interface{} {
	knnQuery := map[string]interface{}{
		query.VectorField: map[string]interface{}{
			"vector": query.Vector,
			"k":      query.K,
		},
	}

	if query.EfSearch > 0 {
		knnQuery[query.VectorField].(map[string]interface{})["method_parameters"] = map[string]interface{}{
			"ef_search": query.EfSearch,
		}
	}

	return map[string]interface{}{
		"size": query.Size,
		"query": map[string]interface{}{
			"knn": knnQuery,
		},
	}
}
