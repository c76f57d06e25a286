package opensearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

// CreateKnowledgeIndex creates the knowledge index with Korean (nori)
// analysis on text fields and a knn_vector embedding field.
func (c *Client) CreateKnowledgeIndex(ctx context.Context, indexName string, dimension int) error {
	if err := c.WaitForRateLimit(ctx); err != nil {
		return fmt.Errorf("rate limit error: %w", err)
	}

	if dimension <= 0 {
		dimension = 1536
	}

	settings := map[string]interface{}{
		"settings": map[string]interface{}{
			"index": map[string]interface{}{
				"knn": true,
			},
			"analysis": map[string]interface{}{
				"analyzer": map[string]interface{}{
					"korean": map[string]interface{}{
						"type":      "custom",
						"tokenizer": "nori_tokenizer",
						"filter":    []string{"nori_readingform", "lowercase"},
					},
				},
			},
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"title": map[string]interface{}{
					"type":     "text",
					"analyzer": "korean",
				},
				"content": map[string]interface{}{
					"type":     "text",
					"analyzer": "korean",
				},
				"category": map[string]interface{}{
					"type": "keyword",
				},
				"created_at": map[string]interface{}{
					"type": "date",
				},
				"embedding": map[string]interface{}{
					"type":      "knn_vector",
					"dimension": dimension,
					"method": map[string]interface{}{
						"engine":     "lucene",
						"space_type": "cosinesimil",
						"name":       "hnsw",
						"parameters": map[string]interface{}{},
					},
				},
			},
		},
	}

	bodyJSON, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal index settings: %w", err)
	}

	req := opensearchapi.IndicesCreateReq{
		Index: indexName,
		Body:  strings.NewReader(string(bodyJSON)),
	}

	_, err = c.client.Indices.Create(ctx, req)
	if err != nil {
		return ClassifyStoreError(err)
	}

	return nil
}

// IndexDocument stores or replaces a single knowledge document.
func (c *Client) IndexDocument(ctx context.Context, indexName, docID string, doc map[string]interface{}) error {
	if err := c.WaitForRateLimit(ctx); err != nil {
		return fmt.Errorf("rate limit error: %w", err)
	}

	bodyJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := opensearchapi.IndexReq{
		Index:      indexName,
		DocumentID: docID,
		Body:       strings.NewReader(string(bodyJSON)),
	}

	_, err = c.client.Index(ctx, req)
	if err != nil {
		return ClassifyStoreError(err)
	}

	return nil
}
