// Package siliconflow calls the SiliconFlow rerank API.
package siliconflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/metasearch/internal/domain"
	"github.com/kailas-cloud/metasearch/internal/domain/rerank"
	"github.com/kailas-cloud/metasearch/internal/metrics"
)

const (
	serviceName = "siliconflow"

	// DefaultEndpoint is the public rerank endpoint.
	DefaultEndpoint = "https://api.siliconflow.cn/v1/rerank"
	// DefaultModel is the reranking model used when none is configured.
	DefaultModel = "Qwen/Qwen3-Reranker-8B"
)

// Reranker scores documents against a query. It is safe for concurrent use.
type Reranker struct {
	apiKey   string
	endpoint string
	model    string
	http     *http.Client
	logger   *zap.Logger
}

// Config holds the rerank provider settings.
type Config struct {
	APIKey     string
	Endpoint   string
	Model      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewReranker creates a SiliconFlow reranker.
func NewReranker(cfg *Config) *Reranker {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reranker{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		model:    model,
		http:     httpClient,
		logger:   logger,
	}
}

// Model returns the configured model name.
func (r *Reranker) Model() string { return r.model }

// Rerank returns relevance scores sorted by descending relevance.
// Empty documents return an empty slice without calling the API.
func (r *Reranker) Rerank(ctx context.Context, query string, documents []string) ([]rerank.Score, error) {
	if len(documents) == 0 {
		return []rerank.Score{}, nil
	}

	body, err := json.Marshal(rerankRequest{Model: r.model, Query: query, Documents: documents})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", domain.ErrRerank, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRerank, domain.NewRequestError(serviceName, err))
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := r.http.Do(req)
	metrics.RerankRequestDuration.WithLabelValues(r.model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RerankRequestsTotal.WithLabelValues(r.model, "error").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrRerank, domain.NewRequestError(serviceName, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		metrics.RerankRequestsTotal.WithLabelValues(r.model, "error").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrRerank, domain.NewStatusError(serviceName, resp.StatusCode))
	}

	var payload rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.RerankRequestsTotal.WithLabelValues(r.model, "error").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrRerank, domain.NewDecodeError(serviceName, err))
	}
	metrics.RerankRequestsTotal.WithLabelValues(r.model, "success").Inc()

	scores := make([]rerank.Score, 0, len(payload.Results))
	for _, item := range payload.Results {
		scores = append(scores, rerank.Score{Index: item.Index, RelevanceScore: item.RelevanceScore})
	}
	rerank.SortByRelevance(scores)

	r.logger.Debug("rerank completed",
		zap.String("id", payload.ID),
		zap.String("model", r.model),
		zap.Int("documents", len(documents)),
		zap.Int("scores", len(scores)),
		zap.Duration("latency", time.Since(start)),
	)
	return scores, nil
}
