package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diasm3/customer-cs/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test_stats.db")

	store, err := NewStoreWithPath(dbPath)
	if err != nil {
		t.Fatalf("NewStoreWithPath failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file was not created")
	}
	return store
}

func TestIncrementSearch(t *testing.T) {
	store := newTestStore(t)

	if err := store.IncrementSearch(ModeHybrid, types.IntentProblemSolving); err != nil {
		t.Fatalf("IncrementSearch failed: %v", err)
	}

	today := time.Now().Format("2006-01-02")
	count, err := store.GetCountByDate(ModeHybrid, today)
	if err != nil {
		t.Fatalf("GetCountByDate failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	if err := store.IncrementSearch(ModeHybrid, types.IntentProblemSolving); err != nil {
		t.Fatalf("second IncrementSearch failed: %v", err)
	}

	count, err = store.GetCountByDate(ModeHybrid, today)
	if err != nil {
		t.Fatalf("GetCountByDate failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
}

func TestIncrementSearchSeparatesIntents(t *testing.T) {
	store := newTestStore(t)

	if err := store.IncrementSearch(ModeHybrid, types.IntentProblemSolving); err != nil {
		t.Fatalf("IncrementSearch failed: %v", err)
	}
	if err := store.IncrementSearch(ModeHybrid, types.IntentComplaint); err != nil {
		t.Fatalf("IncrementSearch failed: %v", err)
	}

	totals, err := store.GetTotalsByIntent()
	if err != nil {
		t.Fatalf("GetTotalsByIntent failed: %v", err)
	}
	if totals[types.IntentProblemSolving] != 1 || totals[types.IntentComplaint] != 1 {
		t.Errorf("unexpected intent totals: %v", totals)
	}

	// Mode total sums over intents.
	total, err := store.GetTotalByMode(ModeHybrid)
	if err != nil {
		t.Fatalf("GetTotalByMode failed: %v", err)
	}
	if total != 2 {
		t.Errorf("expected mode total 2, got %d", total)
	}
}

func TestGetAllTotalsInitializesAllModes(t *testing.T) {
	store := newTestStore(t)

	totals, err := store.GetAllTotals()
	if err != nil {
		t.Fatalf("GetAllTotals failed: %v", err)
	}

	for _, mode := range []Mode{ModeHybrid, ModeFulltext, ModeVector, ModeFallback, ModeAnalyze} {
		if _, ok := totals[mode]; !ok {
			t.Errorf("mode %s missing from totals", mode)
		}
	}
}

func TestGetCountByDateNoRows(t *testing.T) {
	store := newTestStore(t)

	count, err := store.GetCountByDate(ModeVector, "1999-01-01")
	if err != nil {
		t.Fatalf("GetCountByDate failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 for unknown date, got %d", count)
	}
}
