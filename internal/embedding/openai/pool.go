package openai

import (
	"fmt"
	"sync"
)

var (
	sharedClientsMu sync.Mutex
	sharedClients   = make(map[string]*Client)
)

func clientPoolKey(cfg *Config) string {
	return fmt.Sprintf("%s|%s|%s|%d", cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Dimensions)
}

// GetSharedClient returns a process-wide cached embedding client for the
// given settings. Reusing the client keeps HTTP connections pooled
// instead of recreated on each call.
func GetSharedClient(cfg *Config) (*Client, error) {
	key := clientPoolKey(cfg)

	sharedClientsMu.Lock()
	defer sharedClientsMu.Unlock()

	if client, ok := sharedClients[key]; ok {
		return client, nil
	}

	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	sharedClients[key] = client
	return client, nil
}
