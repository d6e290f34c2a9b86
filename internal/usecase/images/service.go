// Package images aggregates keyword image searches.
package images

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/metasearch/internal/domain"
	"github.com/kailas-cloud/metasearch/internal/domain/image"
	"github.com/kailas-cloud/metasearch/internal/fanout"
	"github.com/kailas-cloud/metasearch/internal/logger"
)

const errNoKeywords = "keywords is empty"

// Service fans keywords out to the image searcher. Unlike the text search,
// the batch succeeds only when every keyword does.
type Service struct {
	searcher Searcher
}

// New creates an image search service.
func New(searcher Searcher) *Service {
	return &Service{searcher: searcher}
}

// Search queries every non-blank keyword concurrently and keeps at most limit
// images per keyword. A limit of zero or less keeps everything.
func (s *Service) Search(ctx context.Context, keywords []string, limit int) image.Response {
	filtered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			filtered = append(filtered, kw)
		}
	}
	if len(filtered) == 0 {
		return image.Response{Err: errNoKeywords}
	}

	start := time.Now()
	results, joinErrs := fanout.Run(ctx, len(filtered), func(ctx context.Context, i int) image.Result {
		return s.searchOne(ctx, filtered[i], limit)
	})

	var failures []string
	for _, r := range results {
		if !r.Success {
			failures = append(failures, fmt.Sprintf("%s: %s", r.Query, r.Err))
		}
	}
	for _, err := range joinErrs {
		failures = append(failures, err.Error())
	}

	resp := image.Response{Success: len(failures) == 0, Results: results}
	if len(failures) > 0 {
		resp.Err = strings.Join(failures, "; ")
	}

	logger.FromContext(ctx).Info("image search batch completed",
		zap.Int("keywords", len(filtered)),
		zap.Int("failed", len(failures)),
		zap.Bool("success", resp.Success),
		zap.Duration("latency", time.Since(start)),
	)
	return resp
}

func (s *Service) searchOne(ctx context.Context, keyword string, limit int) image.Result {
	items, err := s.searcher.SearchImages(ctx, keyword)
	if err != nil {
		return image.Result{Query: keyword, Images: []image.Item{}, Err: describe(err)}
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return image.Result{Query: keyword, Success: true, Images: items}
}

func describe(err error) string {
	var up *domain.UpstreamError
	if !errors.As(err, &up) {
		return err.Error()
	}
	switch {
	case up.StatusCode != 0:
		return fmt.Sprintf("request failed with status %d %s", up.StatusCode, http.StatusText(up.StatusCode))
	case up.Op == domain.OpDecode:
		return fmt.Sprintf("decode response failed: %v", up.Err)
	default:
		return fmt.Sprintf("request failed: %v", up.Err)
	}
}
