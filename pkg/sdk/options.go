package metasearch

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	searxngURL string
	httpClient *http.Client

	rerankKey      string
	rerankEndpoint string
	rerankModel    string
	appendUnranked bool

	defaultLimit int
	maxLimit     int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithSearXNG sets the SearXNG base URL. Required.
func WithSearXNG(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.searxngURL = baseURL
	})
}

// WithHTTPClient sets the HTTP client shared by the SearXNG and rerank calls.
// Default: a client with a 30s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithReranker enables reranking with the given SiliconFlow API key.
// An empty key leaves reranking disabled.
func WithReranker(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.rerankKey = apiKey
	})
}

// WithRerankModel overrides the reranking model (default: Qwen/Qwen3-Reranker-8B).
func WithRerankModel(model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.rerankModel = model
	})
}

// WithRerankEndpoint overrides the rerank API endpoint.
func WithRerankEndpoint(endpoint string) Option {
	return optionFunc(func(c *clientConfig) {
		c.rerankEndpoint = endpoint
	})
}

// WithAppendUnranked keeps results the model left unscored after the scored ones
// instead of dropping them.
func WithAppendUnranked() Option {
	return optionFunc(func(c *clientConfig) {
		c.appendUnranked = true
	})
}

// WithLimits sets the default and maximum results per query.
// Defaults: 20 and 50.
func WithLimits(defaultLimit, maxLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLimit = defaultLimit
		c.maxLimit = maxLimit
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
