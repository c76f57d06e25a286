package search

import (
	"testing"

	"github.com/diasm3/customer-cs/internal/types"
)

func TestFuseResultsDedupPrefersFulltext(t *testing.T) {
	fulltext := []types.SearchResult{
		{Content: "shared", SearchType: types.SearchTypeFulltext, FinalScore: 0.5},
	}
	vector := []types.SearchResult{
		{Content: "shared", SearchType: types.SearchTypeVector, FinalScore: 0.9},
		{Content: "unique", SearchType: types.SearchTypeVector, FinalScore: 0.4},
	}

	fused := fuseResults(fulltext, vector, 5)

	if len(fused) != 2 {
		t.Fatalf("expected 2 results after dedup, got %d", len(fused))
	}
	for _, r := range fused {
		if r.Content == "shared" && r.SearchType != types.SearchTypeFulltext {
			t.Fatalf("duplicate content must keep the fulltext result, got %s", r.SearchType)
		}
	}
}

func TestFuseResultsSortsByFinalScoreDesc(t *testing.T) {
	fulltext := []types.SearchResult{
		{Content: "a", FinalScore: 0.2},
		{Content: "b", FinalScore: 0.9},
	}
	vector := []types.SearchResult{
		{Content: "c", FinalScore: 0.5},
	}

	fused := fuseResults(fulltext, vector, 5)

	for i := 1; i < len(fused); i++ {
		if fused[i-1].FinalScore < fused[i].FinalScore {
			t.Fatalf("results not sorted descending: %v", fused)
		}
	}
	if fused[0].Content != "b" {
		t.Fatalf("highest score first, got %q", fused[0].Content)
	}
}

func TestFuseResultsCapsAtLimit(t *testing.T) {
	var fulltext, vector []types.SearchResult
	for i := 0; i < 4; i++ {
		fulltext = append(fulltext, types.SearchResult{Content: string(rune('a' + i)), FinalScore: float64(i)})
		vector = append(vector, types.SearchResult{Content: string(rune('p' + i)), FinalScore: float64(i)})
	}

	fused := fuseResults(fulltext, vector, 5)
	if len(fused) != 5 {
		t.Fatalf("expected 5 results, got %d", len(fused))
	}
}

func TestFuseResultsStableTieBreak(t *testing.T) {
	fulltext := []types.SearchResult{
		{Content: "first", SearchType: types.SearchTypeFulltext, FinalScore: 0.5},
	}
	vector := []types.SearchResult{
		{Content: "second", SearchType: types.SearchTypeVector, FinalScore: 0.5},
	}

	fused := fuseResults(fulltext, vector, 5)
	if fused[0].Content != "first" || fused[1].Content != "second" {
		t.Fatalf("equal scores must keep insertion order (fulltext first): %v", fused)
	}
}

func TestFuseResultsEmptyChannels(t *testing.T) {
	fused := fuseResults(nil, nil, 5)
	if len(fused) != 0 {
		t.Fatalf("expected empty fusion, got %v", fused)
	}
}
