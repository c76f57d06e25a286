package search

import (
	"sort"

	"github.com/diasm3/customer-cs/internal/types"
)

// fuseResults merges the lexical and vector channels into one ranked
// list. Duplicate contents are collapsed keeping the first occurrence,
// so with equal content the lexical result wins because it is appended
// first. The merged list is sorted by final score descending with a
// stable sort to keep ties deterministic, then truncated to limit.
func fuseResults(fulltext, vector []types.SearchResult, limit int) []types.SearchResult {
	merged := make([]types.SearchResult, 0, len(fulltext)+len(vector))
	seen := make(map[string]struct{}, len(fulltext)+len(vector))

	for _, r := range fulltext {
		if _, ok := seen[r.Content]; ok {
			continue
		}
		seen[r.Content] = struct{}{}
		merged = append(merged, r)
	}
	for _, r := range vector {
		if _, ok := seen[r.Content]; ok {
			continue
		}
		seen[r.Content] = struct{}{}
		merged = append(merged, r)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].FinalScore > merged[j].FinalScore
	})

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
