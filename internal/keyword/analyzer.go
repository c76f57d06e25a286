package keyword

import (
	"sort"
	"strings"

	"github.com/diasm3/customer-cs/internal/types"
)

// Analyzer extracts, ranks, and classifies keywords from user queries.
// It holds no per-request state; one instance is safe for concurrent use.
type Analyzer struct {
	tokenizer *Tokenizer
}

// NewAnalyzer constructs an Analyzer with the default tokenizer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{tokenizer: NewTokenizer()}
}

// Tokenizer exposes the underlying tokenizer.
func (a *Analyzer) Tokenizer() *Tokenizer {
	return a.tokenizer
}

// ExtractKeywords tokenizes text and returns the top keywords ranked by
// frequency. Frequencies are counted against the pre-deduplication token
// stream so that repeated terms rank higher and importance is meaningful.
func (a *Analyzer) ExtractKeywords(text string, minLength, maxKeywords int) []types.Keyword {
	tokens := a.tokenizer.CoreTokens(text)

	var filtered []string
	counts := make(map[string]int)
	var order []string
	for _, token := range tokens {
		if len([]rune(token)) < minLength {
			continue
		}
		filtered = append(filtered, token)
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if maxKeywords > 0 && len(order) > maxKeywords {
		order = order[:maxKeywords]
	}

	total := len(filtered)
	keywords := make([]types.Keyword, 0, len(order))
	for _, token := range order {
		importance := 0.0
		if total > 0 {
			importance = float64(counts[token]) / float64(total)
		}
		keywords = append(keywords, types.Keyword{
			Text:           token,
			Frequency:      counts[token],
			Importance:     importance,
			NormalizedForm: token,
		})
	}

	return keywords
}

// TransformQuery reduces a raw query to a space-joined keyword string in
// frequency-descending order. The transformed form feeds the full-text
// channel; the raw query is kept for embedding.
func (a *Analyzer) TransformQuery(query string) string {
	keywords := a.ExtractKeywords(query, 1, 20)
	parts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		parts = append(parts, kw.Text)
	}
	return strings.Join(parts, " ")
}

// Categorize assigns every keyword to exactly one business category.
// Categories are scanned in declaration order; a keyword matches when it
// equals a seed term or contains one as a substring. Unmatched keywords
// land in the "other" bucket.
func (a *Analyzer) Categorize(keywords []types.Keyword) map[types.Category][]types.Keyword {
	categorized := make(map[types.Category][]types.Keyword, len(businessCategories)+1)
	for _, bc := range businessCategories {
		categorized[bc.Category] = []types.Keyword{}
	}
	categorized[types.CategoryOther] = []types.Keyword{}

	for _, kw := range keywords {
		matched := false
		for _, bc := range businessCategories {
			if matchesCategory(kw.Text, bc.Seeds) {
				categorized[bc.Category] = append(categorized[bc.Category], kw)
				matched = true
				break
			}
		}
		if !matched {
			categorized[types.CategoryOther] = append(categorized[types.CategoryOther], kw)
		}
	}

	return categorized
}

func matchesCategory(keyword string, seeds []string) bool {
	for _, seed := range seeds {
		if keyword == seed || strings.Contains(keyword, seed) {
			return true
		}
	}
	return false
}

// DetectIntent scans the transformed query against the intent rule sets in
// priority order and returns the first match, defaulting to general inquiry.
func (a *Analyzer) DetectIntent(transformedQuery string) types.Intent {
	for _, ip := range intentPatterns {
		for _, pattern := range ip.Patterns {
			if strings.Contains(transformedQuery, pattern) {
				return ip.Intent
			}
		}
	}
	return types.IntentGeneralInquiry
}

// AnalyzeQuery runs the full per-turn analysis: extraction, transformation,
// categorization, intent detection, and complexity scoring.
func (a *Analyzer) AnalyzeQuery(query string) *types.QueryAnalysis {
	keywords := a.ExtractKeywords(query, 2, 10)
	transformed := a.TransformQuery(query)

	top := keywords
	if len(top) > 5 {
		top = top[:5]
	}

	return &types.QueryAnalysis{
		RawQuery:            query,
		TransformedQuery:    transformed,
		TotalKeywords:       len(keywords),
		TopKeywords:         top,
		CategorizedKeywords: a.Categorize(keywords),
		DetectedIntent:      a.DetectIntent(transformed),
		QueryLength:         len([]rune(query)),
		ComplexityScore:     float64(len(keywords))*0.1 + float64(len(strings.Fields(query)))*0.05,
	}
}
