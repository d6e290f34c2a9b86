package search

import (
	"context"

	"github.com/kailas-cloud/metasearch/internal/domain/category"
	"github.com/kailas-cloud/metasearch/internal/domain/rerank"
	"github.com/kailas-cloud/metasearch/internal/domain/search/result"
)

// Backend runs one category-scoped query against the meta-search engine.
type Backend interface {
	Search(ctx context.Context, query string, c category.Category) ([]result.Result, error)
}

// Reranker scores documents against a query, most relevant first.
type Reranker interface {
	Rerank(ctx context.Context, query string, documents []string) ([]rerank.Score, error)
}
