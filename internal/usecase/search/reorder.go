package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/metasearch/internal/domain/search/result"
	"github.com/kailas-cloud/metasearch/internal/logger"
	"github.com/kailas-cloud/metasearch/internal/metrics"
)

const rerankQueryTemplate = `用户使用搜索引擎搜索，正在进行%s的类型的搜索，搜索目标是"%s"`

// RerankQuery builds the instruction sent to the reranking model.
func RerankQuery(categoryLabel, query string) string {
	return fmt.Sprintf(rerankQueryTemplate, categoryLabel, query)
}

// Reorderer reorders oversized result lists by model relevance.
type Reorderer struct {
	reranker       Reranker
	appendUnranked bool
}

// ReorderOption configures a Reorderer.
type ReorderOption func(*Reorderer)

// WithAppendUnranked keeps candidates the model did not score, after the scored ones.
func WithAppendUnranked(v bool) ReorderOption {
	return func(r *Reorderer) { r.appendUnranked = v }
}

// NewReorderer creates a reorder stage. A nil reranker disables reranking.
func NewReorderer(reranker Reranker, opts ...ReorderOption) *Reorderer {
	r := &Reorderer{reranker: reranker}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reorder returns at most limit results. Lists that already fit are only
// truncated. A rerank failure keeps the upstream order.
func (r *Reorderer) Reorder(
	ctx context.Context, categoryLabel, query string, results []result.Result, limit int,
) []result.Result {
	if len(results) <= limit || r == nil || r.reranker == nil {
		metrics.ReorderTotal.WithLabelValues("skipped").Inc()
		return truncate(results, limit)
	}

	documents := make([]string, len(results))
	for i, res := range results {
		documents[i] = res.Document()
	}

	scores, err := r.reranker.Rerank(ctx, RerankQuery(categoryLabel, query), documents)
	if err != nil {
		metrics.ReorderTotal.WithLabelValues("fallback").Inc()
		logger.FromContext(ctx).Warn("rerank failed, keeping upstream order",
			zap.String("query", query),
			zap.String("category", categoryLabel),
			zap.Int("candidates", len(results)),
			zap.Error(err),
		)
		return truncate(results, limit)
	}

	ordered := make([]result.Result, 0, len(results))
	seen := make([]bool, len(results))
	for _, s := range scores {
		if s.Index < 0 || s.Index >= len(results) || seen[s.Index] {
			continue
		}
		ordered = append(ordered, results[s.Index])
		seen[s.Index] = true
	}
	if r.appendUnranked {
		for i, res := range results {
			if !seen[i] {
				ordered = append(ordered, res)
			}
		}
	}

	metrics.ReorderTotal.WithLabelValues("reranked").Inc()
	return truncate(ordered, limit)
}

func truncate(results []result.Result, limit int) []result.Result {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}
