// Package searxng queries a SearXNG meta-search instance.
package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/metasearch/internal/domain"
	"github.com/kailas-cloud/metasearch/internal/domain/category"
	"github.com/kailas-cloud/metasearch/internal/domain/image"
	"github.com/kailas-cloud/metasearch/internal/domain/search/result"
	"github.com/kailas-cloud/metasearch/internal/metrics"
)

const serviceName = "searxng"

// Client is a SearXNG JSON API client. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Config holds the SearXNG client settings.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a SearXNG client. A nil HTTPClient uses a client with a 30s timeout.
func NewClient(cfg *Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// Search runs one category-scoped query and returns every item that maps to
// a complete result, in upstream order. No cap is applied.
func (c *Client) Search(ctx context.Context, query string, cat category.Category) ([]result.Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	if filter, ok := cat.Filter(); ok {
		params.Set("categories", filter)
	}

	payload, err := c.fetch(ctx, cat.Label(), params)
	if err != nil {
		return nil, err
	}

	results := make([]result.Result, 0, len(payload.Results))
	dropped := 0
	for _, item := range payload.Results {
		r, ok := mapItem(cat, item)
		if !ok {
			dropped++
			continue
		}
		results = append(results, r)
	}
	if dropped > 0 {
		metrics.UpstreamResultsDropped.WithLabelValues(cat.Label()).Add(float64(dropped))
	}

	c.logger.Debug("searxng search completed",
		zap.String("query", query),
		zap.String("category", cat.Label()),
		zap.Int("raw", len(payload.Results)),
		zap.Int("mapped", len(results)),
	)
	return results, nil
}

// SearchImages runs one keyword query against the image vertical.
func (c *Client) SearchImages(ctx context.Context, keyword string) ([]image.Item, error) {
	params := url.Values{}
	params.Set("q", keyword)
	params.Set("categories", string(category.Images))
	params.Set("format", "json")

	payload, err := c.fetch(ctx, category.Images.Label(), params)
	if err != nil {
		return nil, err
	}

	items := make([]image.Item, 0, len(payload.Results))
	for _, raw := range payload.Results {
		if it, ok := mapImageSearchItem(raw); ok {
			items = append(items, it)
		}
	}
	return items, nil
}

// HealthCheck verifies that the instance answers below 500.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", http.NoBody)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewRequestError(serviceName, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return domain.NewStatusError(serviceName, resp.StatusCode)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, label string, params url.Values) (searchResponse, error) {
	endpoint := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return searchResponse{}, domain.NewRequestError(serviceName, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(label, "error").Inc()
		return searchResponse{}, domain.NewRequestError(serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		metrics.UpstreamRequestsTotal.WithLabelValues(label, "error").Inc()
		return searchResponse{}, domain.NewStatusError(serviceName, resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(label, "error").Inc()
		return searchResponse{}, domain.NewDecodeError(serviceName, err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(label, "success").Inc()
	return payload, nil
}
