package metasearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/metasearch/internal/domain/category"
	"github.com/kailas-cloud/metasearch/internal/domain/image"
	"github.com/kailas-cloud/metasearch/internal/domain/search/outcome"
	"github.com/kailas-cloud/metasearch/internal/domain/search/request"
	"github.com/kailas-cloud/metasearch/internal/transport/searxng"
	"github.com/kailas-cloud/metasearch/internal/transport/siliconflow"
	healthuc "github.com/kailas-cloud/metasearch/internal/usecase/health"
	imagesuc "github.com/kailas-cloud/metasearch/internal/usecase/images"
	searchuc "github.com/kailas-cloud/metasearch/internal/usecase/search"
)

const defaultTimeout = 30 * time.Second

// Internal interfaces for substitution in tests.
type searchUseCase interface {
	Search(ctx context.Context, queries []string, searchType category.Category, limit *int) outcome.Response
}

type imageUseCase interface {
	Search(ctx context.Context, keywords []string, limit int) image.Response
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the metasearch SDK entry point. It is safe for concurrent use.
type Client struct {
	searchSvc searchUseCase
	imageSvc  imageUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. No network call is made until the first search.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.searxngURL), "/")
	if base == "" {
		return nil, ErrSearXNGRequired
	}
	if u, err := url.Parse(base); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("metasearch: invalid searxng url %q", cfg.searxngURL)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return wireClient(base, cfg, obs), nil
}

func wireClient(base string, cfg *clientConfig, obs *observer) *Client {
	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}

	searx := searxng.NewClient(&searxng.Config{BaseURL: base, HTTPClient: hc})

	// Pass nil interface (not typed nil pointer!) when reranking is disabled.
	var reranker searchuc.Reranker
	rerankKey := strings.TrimSpace(cfg.rerankKey)
	if rerankKey != "" {
		reranker = siliconflow.NewReranker(&siliconflow.Config{
			APIKey:     rerankKey,
			Endpoint:   cfg.rerankEndpoint,
			Model:      cfg.rerankModel,
			HTTPClient: hc,
		})
	}

	limits := request.DefaultLimits()
	if cfg.defaultLimit > 0 {
		limits.Default = cfg.defaultLimit
	}
	if cfg.maxLimit > 0 {
		limits.Max = cfg.maxLimit
	}

	reorderer := searchuc.NewReorderer(reranker, searchuc.WithAppendUnranked(cfg.appendUnranked))
	return &Client{
		searchSvc: searchuc.New(searx, reorderer, searchuc.WithLimits(limits)),
		imageSvc:  imagesuc.New(searx),
		healthSvc: healthuc.New(searx, reranker != nil),
		obs:       obs,
	}
}

// Search starts a text search over the given queries.
func (c *Client) Search(queries ...string) *SearchBuilder {
	return &SearchBuilder{client: c, queries: queries, searchType: General}
}

// Images searches images for every keyword concurrently, keeping at most
// limit images per keyword (0 = unlimited).
func (c *Client) Images(ctx context.Context, keywords []string, limit int) ImageResponse {
	start := time.Now()
	resp := c.imageSvc.Search(ctx, keywords, limit)
	c.obs.observe(start, imageStats(resp))
	return imageResponseFromDomain(resp)
}

func imageStats(r image.Response) batchStats {
	s := batchStats{op: "images", items: len(r.Results), success: r.Success, failure: r.Err}
	for _, res := range r.Results {
		if !res.Success {
			s.failed++
		}
	}
	if len(r.Results) == 0 && !r.Success {
		s.items, s.failed = 1, 1
	}
	return s
}

func imageResponseFromDomain(r image.Response) ImageResponse {
	out := ImageResponse{
		Success: r.Success,
		Results: make([]ImageResult, 0, len(r.Results)),
		Err:     r.Err,
	}
	for _, res := range r.Results {
		ir := ImageResult{
			Query:   res.Query,
			Success: res.Success,
			Images:  make([]ImageItem, 0, len(res.Images)),
			Err:     res.Err,
		}
		for _, it := range res.Images {
			ir.Images = append(ir.Images, ImageItem{ImageURL: it.ImageURL(), Description: it.Description()})
		}
		out.Results = append(out.Results, ir)
	}
	return out
}
