package metrics

import (
	"log"
	"sync"

	"github.com/diasm3/customer-cs/internal/types"
)

var (
	globalStore *Store
	initOnce    sync.Once
	initErr     error
)

// Init initializes the global metrics store.
// This should be called once at application startup.
// It is safe to call multiple times; subsequent calls are no-ops.
func Init() error {
	initOnce.Do(func() {
		globalStore, initErr = NewStore()
		if initErr != nil {
			log.Printf("metrics: failed to initialize store: %v", initErr)
		}
	})
	return initErr
}

// RecordSearch increments the search count for the given mode and intent.
// If the store is not initialized, this is a no-op (logs a warning).
func RecordSearch(mode Mode, intent types.Intent) {
	if globalStore == nil {
		if err := Init(); err != nil {
			log.Printf("metrics: cannot record search, store not initialized: %v", err)
			return
		}
	}

	if err := globalStore.IncrementSearch(mode, intent); err != nil {
		log.Printf("metrics: failed to record search for %s: %v", mode, err)
	}
}

// GetStats returns the cumulative search counts for all modes.
// Returns nil if the store is not initialized.
func GetStats() map[Mode]int64 {
	if globalStore == nil {
		return nil
	}

	stats, err := globalStore.GetAllTotals()
	if err != nil {
		log.Printf("metrics: failed to get stats: %v", err)
		return nil
	}

	return stats
}

// GetIntentStats returns cumulative counts grouped by detected intent.
// Returns nil if the store is not initialized.
func GetIntentStats() map[types.Intent]int64 {
	if globalStore == nil {
		return nil
	}

	stats, err := globalStore.GetTotalsByIntent()
	if err != nil {
		log.Printf("metrics: failed to get intent stats: %v", err)
		return nil
	}

	return stats
}

// Close closes the global store if it was initialized.
func Close() error {
	if globalStore == nil {
		return nil
	}
	return globalStore.Close()
}
