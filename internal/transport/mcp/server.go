// Package mcp exposes the search services as Model Context Protocol tools
// over streamable HTTP.
package mcp

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/metasearch/internal/domain/category"
	"github.com/kailas-cloud/metasearch/internal/domain/image"
	"github.com/kailas-cloud/metasearch/internal/domain/search/outcome"
	"github.com/kailas-cloud/metasearch/internal/version"
)

const instructions = "搜索服务，提供 opensearch 工具；opensearch 支持按 search_type 选择类别并对 queries 并发查询；" +
	"image_search 按 keywords 并发搜索图片"

// TextSearcher runs a multi-query text search.
type TextSearcher interface {
	Search(ctx context.Context, queries []string, searchType category.Category, limit *int) outcome.Response
}

// ImageSearcher runs a multi-keyword image search.
type ImageSearcher interface {
	Search(ctx context.Context, keywords []string, limit int) image.Response
}

// Server wraps an MCP server with the search tools registered.
type Server struct {
	mcp    *mcp.Server
	search TextSearcher
	images ImageSearcher
	logger *zap.Logger
}

// Config configures the MCP server.
type Config struct {
	// Name is the server implementation name (default: "metasearch")
	Name string

	// Version is the server version (default: version.Version)
	Version string

	// Logger for tool calls made outside an HTTP request scope
	Logger *zap.Logger
}

// NewServer creates an MCP server. imageSvc is optional; without it only opensearch is registered.
func NewServer(cfg *Config, searchSvc TextSearcher, imageSvc ImageSearcher) *Server {
	if cfg == nil {
		cfg = &Config{}
	}
	name := cfg.Name
	if name == "" {
		name = "metasearch"
	}
	ver := cfg.Version
	if ver == "" {
		ver = version.Version
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		mcp: mcp.NewServer(
			&mcp.Implementation{Name: name, Version: ver},
			&mcp.ServerOptions{Instructions: instructions},
		),
		search: searchSvc,
		images: imageSvc,
		logger: log,
	}
	s.registerTools()
	return s
}

// MCP returns the underlying SDK server.
func (s *Server) MCP() *mcp.Server { return s.mcp }

// Handler returns the streamable HTTP handler serving every session from this server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}
