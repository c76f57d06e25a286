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

// SearchGeneric runs a plain lexical match with the raw user query.
// It is the last resort when keyword-driven search returns nothing.
func (c *Client) SearchGeneric(ctx context.Context, indexName string, rawQuery string, size int) ([]types.StoreHit, error) {
	if strings.TrimSpace(rawQuery) == "" {
		return nil, NewSearchError(types.ErrorTypeValidation, "query string cannot be empty")
	}

	if size <= 0 {
		size = 5
	}

	startTime := time.Now()
	var hits []types.StoreHit

	operation := func() error {
		if err := c.WaitForRateLimit(ctx); err != nil {
			return fmt.Errorf("rate limit error: %w", err)
		}

		searchBody := map[string]interface{}{
			"size": size,
			"query": map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  rawQuery,
					"fields": []string{"title", "content"},
					"type":   "best_fields",
				},
			},
		}

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

	err := c.ExecuteWithRetry(ctx, operation, "GenericSearch")

	duration := time.Since(startTime)
	c.RecordRequest(duration, err == nil)

	if err == nil {
		log.Printf("Generic search completed in %v, found %d results", duration, len(hits))
	}

	return hits, err
}
