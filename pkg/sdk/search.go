package metasearch

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/metasearch/internal/domain/category"
	"github.com/kailas-cloud/metasearch/internal/domain/search/outcome"
)

// SearchBuilder is a fluent builder for multi-query text searches.
type SearchBuilder struct {
	client     *Client
	queries    []string
	searchType SearchType
	limit      *int
}

// Type sets the search vertical (default: General).
func (b *SearchBuilder) Type(t SearchType) *SearchBuilder {
	b.searchType = t
	return b
}

// Limit sets the maximum results per query. Values above the maximum are
// clamped; zero or less fails the search with a response-level error.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.limit = &n
	return b
}

// Do executes the search. Validation and upstream failures are reported in
// the response; only an unknown search type returns an error.
func (b *SearchBuilder) Do(ctx context.Context) (SearchResponse, error) {
	c, err := category.Parse(string(b.searchType))
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}

	start := time.Now()
	resp := b.client.searchSvc.Search(ctx, b.queries, c, b.limit)
	b.client.obs.observe(start, searchStats(resp))
	return searchResponseFromDomain(resp), nil
}

// searchStats counts failed outcomes. A response rejected before dispatch
// counts as a single failed item.
func searchStats(r outcome.Response) batchStats {
	s := batchStats{op: "search", success: r.Success(), failure: r.Err()}
	if r.Err() != "" {
		s.items, s.failed = 1, 1
		return s
	}
	for _, o := range r.Outcomes() {
		s.items++
		if o.Success() {
			continue
		}
		s.failed++
		if s.failure == "" {
			s.failure = o.Err()
		}
	}
	return s
}

func searchResponseFromDomain(r outcome.Response) SearchResponse {
	outcomes := r.Outcomes()
	out := SearchResponse{
		Success:    r.Success(),
		SearchType: SearchType(r.SearchType()),
		Results:    make([]QueryResult, 0, len(outcomes)),
		Err:        r.Err(),
	}
	for _, o := range outcomes {
		results := o.Results()
		qr := QueryResult{
			Query:   o.Query(),
			Success: o.Success(),
			Results: make([]SearchResult, 0, len(results)),
			Err:     o.Err(),
		}
		for _, res := range results {
			qr.Results = append(qr.Results, SearchResult{URL: res.URL(), Description: res.Description()})
		}
		out.Results = append(out.Results, qr)
	}
	return out
}
