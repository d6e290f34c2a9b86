package search

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/metasearch/internal/domain/category"
	"github.com/kailas-cloud/metasearch/internal/domain/search/outcome"
	"github.com/kailas-cloud/metasearch/internal/domain/search/request"
	"github.com/kailas-cloud/metasearch/internal/logger"
)

const errEmptyQuery = "query is empty"

// Service fans a batch of queries out to the backend and gathers the outcomes in input order.
type Service struct {
	backend   Backend
	reorderer *Reorderer
	limits    request.Limits
}

// Option configures the search service.
type Option func(*Service)

// WithLimits overrides the default and maximum per-query caps.
func WithLimits(l request.Limits) Option {
	return func(s *Service) { s.limits = l }
}

// New creates a search service. A nil reorderer only truncates.
func New(backend Backend, reorderer *Reorderer, opts ...Option) *Service {
	s := &Service{backend: backend, reorderer: reorderer, limits: request.DefaultLimits()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs every query concurrently. Invalid parameters fail the batch
// before dispatch; per-query failures only mark their own outcome.
func (s *Service) Search(
	ctx context.Context, queries []string, searchType category.Category, limit *int,
) outcome.Response {
	req, err := request.New(queries, searchType, limit, s.limits)
	if err != nil {
		return outcome.Fail(searchType, err.Error())
	}

	log := logger.FromContext(ctx)
	start := time.Now()

	outcomes := make([]outcome.Outcome, len(req.Queries()))
	var g errgroup.Group
	for i, q := range req.Queries() {
		if q == "" {
			outcomes[i] = outcome.NewError(q, errEmptyQuery)
			continue
		}
		g.Go(func() error {
			outcomes[i] = s.searchOne(ctx, q, req.Category(), req.Limit())
			return nil
		})
	}
	_ = g.Wait()

	resp := outcome.NewResponse(req.Category(), outcomes)
	log.Info("search batch completed",
		zap.String("search_type", resp.SearchType()),
		zap.Int("queries", len(outcomes)),
		zap.Int("limit", req.Limit()),
		zap.Bool("success", resp.Success()),
		zap.Duration("latency", time.Since(start)),
	)
	return resp
}

func (s *Service) searchOne(ctx context.Context, query string, c category.Category, limit int) outcome.Outcome {
	results, err := s.backend.Search(ctx, query, c)
	if err != nil {
		logger.FromContext(ctx).Warn("search query failed",
			zap.String("query", query),
			zap.String("category", c.Label()),
			zap.Error(err),
		)
		return outcome.NewError(query, err.Error())
	}
	return outcome.NewOK(query, s.reorderer.Reorder(ctx, c.Label(), query, results, limit))
}
