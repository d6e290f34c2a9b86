package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/metasearch/internal/config"
	"github.com/kailas-cloud/metasearch/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/metasearch/internal/logger"
	"github.com/kailas-cloud/metasearch/internal/metrics"
	"github.com/kailas-cloud/metasearch/internal/transport/searxng"
	"github.com/kailas-cloud/metasearch/internal/transport/siliconflow"
	healthuc "github.com/kailas-cloud/metasearch/internal/usecase/health"
	imagesuc "github.com/kailas-cloud/metasearch/internal/usecase/images"
	searchuc "github.com/kailas-cloud/metasearch/internal/usecase/search"
	"github.com/kailas-cloud/metasearch/internal/version"
)

// app is the composition root shared by every subcommand.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger

	search *searchuc.Service
	images *imagesuc.Service
	health *healthuc.Service
}

// loadApp reads configuration and builds the logger and services.
func loadApp(cmd *cobra.Command) (*app, error) {
	env := config.GetEnv()

	cfgFile, _ := cmd.Flags().GetString("config")
	var (
		cfg config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return newApp(env, cfg, logger), nil
}

func newApp(env string, cfg config.Config, logger *zap.Logger) *app {
	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	searx := searxng.NewClient(&searxng.Config{
		BaseURL:    cfg.SearXNG.URL,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.SearXNG.TimeoutSec) * time.Second},
		Logger:     logger,
	})

	// Pass nil interface (not typed nil pointer!) when reranking is disabled.
	var reranker searchuc.Reranker
	if cfg.Rerank.Enabled() {
		reranker = siliconflow.NewReranker(&siliconflow.Config{
			APIKey:     cfg.Rerank.APIKey,
			Endpoint:   cfg.Rerank.Endpoint,
			Model:      cfg.Rerank.Model,
			HTTPClient: &http.Client{Timeout: time.Duration(cfg.Rerank.TimeoutSec) * time.Second},
			Logger:     logger,
		})
	}
	reorderer := searchuc.NewReorderer(reranker, searchuc.WithAppendUnranked(cfg.Rerank.AppendUnranked))

	return &app{
		env:    env,
		cfg:    cfg,
		logger: logger,
		search: searchuc.New(searx, reorderer, searchuc.WithLimits(request.Limits{
			Default: cfg.Search.DefaultLimit,
			Max:     cfg.Search.MaxLimit,
		})),
		images: imagesuc.New(searx),
		health: healthuc.New(searx, cfg.Rerank.Enabled(), healthuc.WithVersion(version.Version)),
	}
}

func (a *app) close() {
	_ = a.logger.Sync()
}
