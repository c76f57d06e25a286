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

// FulltextQuery describes a lexical search over the knowledge index.
// Terms are joined with spaces and matched with the "or" operator so a
// document matching any keyword is a candidate.
type FulltextQuery struct {
	Terms    []string `json:"terms"`
	Fields   []string `json:"fields"`
	Operator string   `json:"operator,omitempty"`
	MinScore float64  `json:"min_score,omitempty"`
	Size     int      `json:"size,omitempty"`
}

// knowledgeSource is the stored document shape in the knowledge index.
type knowledgeSource struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (c *Client) SearchFulltext(ctx context.Context, indexName string, query *FulltextQuery) ([]types.StoreHit, error) {
	if query == nil {
		return nil, NewSearchError(types.ErrorTypeValidation, "query cannot be nil")
	}

	if len(query.Terms) == 0 {
		return nil, NewSearchError(types.ErrorTypeValidation, "at least one search term is required")
	}

	if query.Size <= 0 {
		query.Size = 3
	}
	if query.Size > 1000 {
		query.Size = 1000
	}
	if len(query.Fields) == 0 {
		query.Fields = []string{"title", "content"}
	}
	if query.Operator == "" {
		query.Operator = "or"
	}

	startTime := time.Now()
	var hits []types.StoreHit

	operation := func() error {
		if err := c.WaitForRateLimit(ctx); err != nil {
			return fmt.Errorf("rate limit error: %w", err)
		}

		searchBody := buildFulltextSearchBody(query)
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

	err := c.ExecuteWithRetry(ctx, operation, "FulltextSearch")

	duration := time.Since(startTime)
	c.RecordRequest(duration, err == nil)

	if err == nil {
		log.Printf("Fulltext search completed in %v, found %d results", duration, len(hits))
	}

	return hits, err
}

func buildFulltextSearchBody(query *FulltextQuery) map[string]interface{} {
	multiMatch := map[string]interface{}{
		"query":    strings.Join(query.Terms, " "),
		"fields":   query.Fields,
		"type":     "best_fields",
		"operator": query.Operator,
	}

	body := map[string]interface{}{
		"size": query.Size,
		"query": map[string]interface{}{
			"multi_match": multiMatch,
		},
		"sort": []map[string]interface{}{
			{"_score": map[string]string{"order": "desc"}},
		},
	}

	if query.MinScore > 0 {
		body["min_score"] = query.MinScore
	}

	return body
}

func decodeHits(resp *opensearchapi.SearchResp) []types.StoreHit {
	hits := make([]types.StoreHit, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var src knowledgeSource
		if err := json.Unmarshal(hit.Source, &src); err != nil {
			log.Printf("skipping hit %s: failed to decode source: %v", hit.ID, err)
			continue
		}
		hits = append(hits, types.StoreHit{
			ID:      hit.ID,
			Title:   src.Title,
			Content: src.Content,
			Score:   float64(hit.Score),
		})
	}
	return hits
}
