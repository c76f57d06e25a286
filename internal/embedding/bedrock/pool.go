package bedrock

import (
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
)

var (
	sharedClientsMu sync.Mutex
	sharedClients   = make(map[string]*Client)
)

func clientPoolKey(cfg aws.Config, modelID string, dimension int) string {
	credPtr := ""
	if cfg.Credentials != nil {
		credPtr = fmt.Sprintf("%p", cfg.Credentials)
	}
	return fmt.Sprintf("%s|%s|%d|%s", cfg.Region, modelID, dimension, credPtr)
}

// GetSharedClient returns a process-wide cached Bedrock client for the
// given region/model. Reusing the client ensures HTTP/2 connections are
// pooled instead of recreated on each call.
func GetSharedClient(cfg aws.Config, modelID string, dimension int) *Client {
	key := clientPoolKey(cfg, modelID, dimension)

	sharedClientsMu.Lock()
	defer sharedClientsMu.Unlock()

	if client, ok := sharedClients[key]; ok {
		return client
	}

	client := NewClient(cfg, modelID, dimension)
	sharedClients[key] = client
	return client
}
