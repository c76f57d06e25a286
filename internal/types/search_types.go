package types

// SearchType identifies which retrieval channel produced a result.
type SearchType string

const (
	SearchTypeFulltext SearchType = "fulltext"
	SearchTypeVector   SearchType = "vector"
)

// Keyword is a single extracted keyword with its frequency statistics.
// Keywords are computed per query and never persisted.
type Keyword struct {
	Text           string  `json:"keyword"`
	Frequency      int     `json:"frequency"`
	Importance     float64 `json:"importance"`
	NormalizedForm string  `json:"normalized_form"`
}

// Category is one of the fixed business category labels.
type Category string

const (
	CategoryProductService  Category = "product_service"
	CategoryCustomerSupport Category = "customer_support"
	CategoryOrderPayment    Category = "order_payment"
	CategoryTechnical       Category = "technical"
	CategoryPolicyTerms     Category = "policy_terms"
	CategoryOther           Category = "other"
)

// Intent is the coarse classification of the user's query purpose.
type Intent string

const (
	IntentInformationRequest Intent = "information_request"
	IntentProblemSolving     Intent = "problem_solving"
	IntentPurchase           Intent = "purchase_intent"
	IntentComplaint          Intent = "complaint"
	IntentGeneralInquiry     Intent = "general_inquiry"
)

// QueryAnalysis is the per-turn analysis of a user query. It is consumed
// immediately by the search adapters and not retained between turns.
type QueryAnalysis struct {
	RawQuery            string                 `json:"raw_query"`
	TransformedQuery    string                 `json:"transformed_query"`
	TotalKeywords       int                    `json:"total_keywords"`
	TopKeywords         []Keyword              `json:"top_keywords"`
	CategorizedKeywords map[Category][]Keyword `json:"categorized_keywords"`
	DetectedIntent      Intent                 `json:"detected_intent"`
	QueryLength         int                    `json:"query_length"`
	ComplexityScore     float64                `json:"complexity_score"`
}

// StoreHit is a single row returned by the external knowledge store,
// common to the full-text, vector, and fallback query contracts.
type StoreHit struct {
	ID      string  `json:"id,omitempty"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// SearchResult is a ranked context snippet returned by the retrieval
// pipeline. FinalScore carries the channel weighting: the raw score for
// full-text hits, raw score x 0.8 for vector hits.
type SearchResult struct {
	Content    string     `json:"content"`
	Title      string     `json:"title"`
	Score      float64    `json:"score"`
	SearchType SearchType `json:"search_type"`
	FinalScore float64    `json:"final_score"`
}
