package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chiTransport "github.com/kailas-cloud/metasearch/internal/transport/chi"
	mcpTransport "github.com/kailas-cloud/metasearch/internal/transport/mcp"
	"github.com/kailas-cloud/metasearch/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP HTTP server",
	Long: `Serve exposes the opensearch and image_search tools on /mcp (streamable
HTTP), plus /health and /metrics. When a token is configured every /mcp
request must carry "Authorization: Bearer <token>".`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return a.serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func (a *app) serve(ctx context.Context) error {
	logger := a.logger
	logger.Info("Starting metasearch MCP server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", a.env),
		zap.String("bind", a.cfg.HTTP.Bind),
		zap.String("searxng_url", a.cfg.SearXNG.URL),
		zap.Bool("rerank_enabled", a.cfg.Rerank.Enabled()),
		zap.Bool("auth_enabled", a.cfg.Auth.Enabled()),
	)

	mcpServer := mcpTransport.NewServer(&mcpTransport.Config{Logger: logger}, a.search, a.images)
	server := chiTransport.NewServer(a.health, mcpServer.Handler(), logger)

	srv := &http.Server{
		Addr:              a.cfg.HTTP.Bind,
		Handler:           server.Router(a.cfg.Auth.Token),
		ReadHeaderTimeout: time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadTimeout:       time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server stopped gracefully")
	return nil
}
