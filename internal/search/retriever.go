package search

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/diasm3/customer-cs/internal/keyword"
	"github.com/diasm3/customer-cs/internal/metrics"
	"github.com/diasm3/customer-cs/internal/opensearch"
	"github.com/diasm3/customer-cs/internal/types"
)

var retrievalTracer = otel.Tracer("customer-cs/search")

const (
	// fulltextScoreFloor is the relevance floor for lexical hits; hits
	// must score strictly above it to survive.
	fulltextScoreFloor = 0.3
	fulltextLimit      = 3
	vectorLimit        = 3
	// vectorChannelWeight discounts vector scores so lexical matches
	// outrank semantic ones at equal raw score.
	vectorChannelWeight = 0.8
	hybridLimit         = 5
	maxSearchTerms      = 3
	// Lexical search terms come from the transformed query: tokens of
	// at least two runes, at most ten keywords before expansion.
	searchTermMinLength   = 2
	searchTermMaxKeywords = 10
)

// excludedSearchTerms are verb stems too generic to discriminate
// between knowledge documents.
var excludedSearchTerms = map[string]struct{}{
	"어떻다": {},
	"되다":  {},
	"있다":  {},
	"하다":  {},
	"이다":  {},
	"같다":  {},
	"보다":  {},
	"말하다": {},
}

// Embedder turns text into a dense vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// Store is the knowledge store contract the retriever depends on.
// *opensearch.Client satisfies it.
type Store interface {
	SearchFulltext(ctx context.Context, indexName string, query *opensearch.FulltextQuery) ([]types.StoreHit, error)
	SearchVector(ctx context.Context, indexName string, query *opensearch.VectorQuery) ([]types.StoreHit, error)
	SearchGeneric(ctx context.Context, indexName string, rawQuery string, size int) ([]types.StoreHit, error)
}

// Retriever runs the hybrid retrieval pipeline: query analysis, synonym
// expansion, dual-channel search and score fusion.
type Retriever struct {
	store       Store
	embedder    Embedder
	analyzer    *keyword.Analyzer
	index       string
	logger      *log.Logger
	recordUsage func(mode metrics.Mode, intent types.Intent)
}

func NewRetriever(store Store, embedder Embedder, indexName string) *Retriever {
	return &Retriever{
		store:    store,
		embedder: embedder,
		analyzer: keyword.NewAnalyzer(),
		index:    indexName,
		logger:   log.Default(),
	}
}

// SetUsageRecorder wires an invocation counter for fallback searches. The
// CLI passes metrics.RecordSearch; a nil recorder disables counting.
func (r *Retriever) SetUsageRecorder(record func(mode metrics.Mode, intent types.Intent)) {
	r.recordUsage = record
}

// searchTerms derives the lexical search terms for a query: keywords
// extracted from the transformed query, generic verb stems dropped,
// synonym-expanded against the raw query, capped at maxSearchTerms.
func (r *Retriever) searchTerms(query string) []string {
	transformed := r.analyzer.TransformQuery(query)
	extracted := r.analyzer.ExtractKeywords(transformed, searchTermMinLength, searchTermMaxKeywords)

	// The verb-stem filter runs before expansion so the trigger
	// injection sees the usable keyword count, not the raw one.
	texts := make([]string, 0, len(extracted))
	for _, kw := range extracted {
		if _, excluded := excludedSearchTerms[kw.Text]; excluded {
			continue
		}
		texts = append(texts, kw.Text)
	}

	terms := keyword.ExpandKeywords(texts, query)
	if len(terms) > maxSearchTerms {
		terms = terms[:maxSearchTerms]
	}
	return terms
}

// FulltextSearch runs the keyword-driven lexical channel. When no
// usable search terms can be derived it falls back to a generic match
// with the raw query.
func (r *Retriever) FulltextSearch(ctx context.Context, query string) ([]types.SearchResult, error) {
	terms := r.searchTerms(query)

	if len(terms) == 0 {
		r.logger.Printf("[fulltext] no search terms derived from query, falling back to generic search")
		return r.genericFallback(ctx, query, fulltextLimit)
	}

	r.logger.Printf("[fulltext] searching with terms: %v", terms)

	hits, err := r.store.SearchFulltext(ctx, r.index, &opensearch.FulltextQuery{
		Terms:    terms,
		MinScore: fulltextScoreFloor,
		Size:     fulltextLimit,
	})
	if err != nil {
		r.logger.Printf("[fulltext] store query failed, falling back to generic search: %v", err)
		return r.genericFallback(ctx, query, fulltextLimit)
	}

	results := make([]types.SearchResult, 0, len(hits))
	for _, hit := range hits {
		// min_score is inclusive server-side; the floor is strict.
		if hit.Score <= fulltextScoreFloor {
			continue
		}
		results = append(results, types.SearchResult{
			Content:    hit.Content,
			Title:      hit.Title,
			Score:      hit.Score,
			SearchType: types.SearchTypeFulltext,
			FinalScore: hit.Score,
		})
	}
	return results, nil
}

// VectorSearch runs the semantic channel. It is best-effort: any
// failure, embedding or store, yields an empty result set rather than
// an error so lexical results are never lost to a vector outage.
func (r *Retriever) VectorSearch(ctx context.Context, query string) []types.SearchResult {
	if r.embedder == nil {
		r.logger.Printf("[vector] no embedder configured, skipping vector channel")
		return nil
	}

	vector, err := r.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		r.logger.Printf("[vector] embedding generation failed: %v", err)
		return nil
	}

	hits, err := r.store.SearchVector(ctx, r.index, &opensearch.VectorQuery{
		Vector: vector,
		K:      vectorLimit,
		Size:   vectorLimit,
	})
	if err != nil {
		r.logger.Printf("[vector] store query failed: %v", err)
		return nil
	}

	results := make([]types.SearchResult, 0, len(hits))
	for _, hit := range hits {
		if hit.Content == "" {
			continue
		}
		results = append(results, types.SearchResult{
			Content:    hit.Content,
			Title:      hit.Title,
			Score:      hit.Score,
			SearchType: types.SearchTypeVector,
			FinalScore: hit.Score * vectorChannelWeight,
		})
	}
	return results
}

// HybridSearch runs both channels concurrently and fuses the results.
// If both channels come back empty it falls back to a generic search
// with the original query.
func (r *Retriever) HybridSearch(ctx context.Context, query string) ([]types.SearchResult, error) {
	ctx, span := retrievalTracer.Start(ctx, "retrieval.hybrid")
	defer span.End()

	if query == "" {
		err := fmt.Errorf("search query cannot be empty")
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid_query")
		return nil, err
	}

	requestID := uuid.New().String()
	span.SetAttributes(
		attribute.String("retrieval.request_id", requestID),
		attribute.String("retrieval.index", r.index),
	)

	start := time.Now()
	r.logger.Printf("[hybrid %s] query: %q", requestID, query)

	var (
		fulltextResults []types.SearchResult
		vectorResults   []types.SearchResult
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		results, err := r.FulltextSearch(gctx, query)
		if err != nil {
			// Best-effort: the vector channel may still produce hits.
			r.logger.Printf("[hybrid %s] fulltext channel failed: %v", requestID, err)
			span.RecordError(err)
			return nil
		}
		fulltextResults = results
		return nil
	})

	group.Go(func() error {
		vectorResults = r.VectorSearch(gctx, query)
		return nil
	})

	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "hybrid_search_failed")
		return nil, err
	}

	fused := fuseResults(fulltextResults, vectorResults, hybridLimit)

	if len(fused) == 0 {
		r.logger.Printf("[hybrid %s] both channels empty, falling back to generic search", requestID)
		span.SetAttributes(attribute.Bool("retrieval.fallback", true))

		fallbackResults, err := r.genericFallback(ctx, query, hybridLimit)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "fallback_failed")
			return nil, err
		}
		fused = fallbackResults
	}

	span.SetAttributes(
		attribute.Int("retrieval.results.fulltext", len(fulltextResults)),
		attribute.Int("retrieval.results.vector", len(vectorResults)),
		attribute.Int("retrieval.results.fused", len(fused)),
		attribute.Float64("retrieval.duration_ms", float64(time.Since(start).Milliseconds())),
	)

	r.logger.Printf("[hybrid %s] completed in %v: %d fulltext, %d vector, %d fused",
		requestID, time.Since(start), len(fulltextResults), len(vectorResults), len(fused))
	return fused, nil
}

// Retrieve analyzes the query and runs the hybrid search in one call.
func (r *Retriever) Retrieve(ctx context.Context, query string) (*types.QueryAnalysis, []types.SearchResult, error) {
	analysis := r.analyzer.AnalyzeQuery(query)

	results, err := r.HybridSearch(ctx, query)
	if err != nil {
		return analysis, nil, err
	}
	return analysis, results, nil
}

// Analyzer exposes the underlying query analyzer.
func (r *Retriever) Analyzer() *keyword.Analyzer {
	return r.analyzer
}

// genericFallback runs the raw-query generic search and counts the
// fallback invocation.
func (r *Retriever) genericFallback(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	hits, err := r.store.SearchGeneric(ctx, r.index, query, limit)
	if err != nil {
		return nil, err
	}
	if r.recordUsage != nil {
		r.recordUsage(metrics.ModeFallback, r.analyzer.DetectIntent(r.analyzer.TransformQuery(query)))
	}
	return hitsToResults(hits, types.SearchTypeFulltext, 1.0), nil
}

func hitsToResults(hits []types.StoreHit, searchType types.SearchType, weight float64) []types.SearchResult {
	results := make([]types.SearchResult, 0, len(hits))
	for _, hit := range hits {
		if hit.Content == "" {
			continue
		}
		results = append(results, types.SearchResult{
			Content:    hit.Content,
			Title:      hit.Title,
			Score:      hit.Score,
			SearchType: searchType,
			FinalScore: hit.Score * weight,
		})
	}
	return results
}
