package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/metasearch/internal/domain/category"
	"github.com/kailas-cloud/metasearch/internal/logger"
	"github.com/kailas-cloud/metasearch/internal/metrics"
	"github.com/kailas-cloud/metasearch/internal/transport/wire"
)

const (
	toolOpenSearch  = "opensearch"
	toolImageSearch = "image_search"

	fallbackFailedText = `{"success":false,"error":"fallback serialization failed"}`
)

// marshalJSON is swapped in tests to exercise the fallback path.
var marshalJSON = json.Marshal

type openSearchInput struct {
	Queries    []string `json:"queries" jsonschema:"Search queries, run concurrently"`
	SearchType string   `json:"search_type,omitempty" jsonschema:"One of general, news, images, videos, science (default: general)"`
	Limit      *int     `json:"limit,omitempty" jsonschema:"Maximum results per query (default: 20, max: 50)"`
}

type imageSearchInput struct {
	Keywords []string `json:"keywords" jsonschema:"Image search keywords, run concurrently"`
	Limit    int      `json:"limit,omitempty" jsonschema:"Maximum images per keyword (default: unlimited)"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: toolOpenSearch,
		Description: "搜索工具：search type 支持 general（通用搜索）；news（新闻搜索）；images（图示搜索）；" +
			"videos（视频搜索）；science（学术搜索）。可同时搜索多个关键词，在消息中标注消息来源",
	}, s.openSearch)

	if s.images != nil {
		mcp.AddTool(s.mcp, &mcp.Tool{
			Name:        toolImageSearch,
			Description: "图片搜索工具：按多个关键词并发搜索图片，返回图片地址与标题",
		}, s.imageSearch)
	}
}

func (s *Server) openSearch(
	ctx context.Context, _ *mcp.CallToolRequest, args openSearchInput,
) (*mcp.CallToolResult, any, error) {
	ctx, done := s.begin(ctx, toolOpenSearch)

	c, err := category.Parse(args.SearchType)
	if err != nil {
		done(false)
		return nil, nil, err
	}

	resp := wire.FromResponse(s.search.Search(ctx, args.Queries, c, args.Limit))
	done(resp.Success)
	return searchResult(ctx, resp), nil, nil
}

func (s *Server) imageSearch(
	ctx context.Context, _ *mcp.CallToolRequest, args imageSearchInput,
) (*mcp.CallToolResult, any, error) {
	ctx, done := s.begin(ctx, toolImageSearch)

	resp := wire.FromImageResponse(s.images.Search(ctx, args.Keywords, args.Limit))
	done(resp.Success)

	data, err := marshalJSON(resp)
	if err != nil {
		logger.FromContext(ctx).Error("image search serialization failed", zap.Error(err))
		return textResult(fallbackFailedText), nil, nil
	}
	return structuredResult(data), nil, nil
}

// begin attaches a tool-scoped logger and returns a callback recording the call outcome.
func (s *Server) begin(ctx context.Context, tool string) (context.Context, func(success bool)) {
	if !logger.HasLogger(ctx) {
		ctx = logger.ContextWithLogger(ctx, s.logger)
	}
	ctx = logger.With(ctx, zap.String("tool", tool))
	start := time.Now()

	return ctx, func(success bool) {
		status := "success"
		if !success {
			status = "error"
		}
		elapsed := time.Since(start)
		metrics.ToolCallsTotal.WithLabelValues(tool, status).Inc()
		metrics.ToolCallDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
		logger.FromContext(ctx).Info("tool call completed",
			zap.String("status", status),
			zap.Duration("latency", elapsed),
		)
	}
}

// searchResult returns the response as structured content plus the same JSON
// as text. If the response cannot be serialized, a text-only result is built
// by hand instead.
func searchResult(ctx context.Context, resp wire.AggregateResponse) *mcp.CallToolResult {
	data, err := marshalJSON(resp)
	if err == nil {
		return structuredResult(data)
	}

	logger.FromContext(ctx).Error("structured serialization failed", zap.Error(err))
	return textResult(fallbackText(resp, err))
}

func fallbackText(resp wire.AggregateResponse, cause error) string {
	outcomes := make([]map[string]any, 0, len(resp.Results))
	for _, o := range resp.Results {
		results := make([]map[string]any, 0, len(o.Results))
		for _, r := range o.Results {
			results = append(results, map[string]any{"url": r.URL, "description": r.Description})
		}
		outcomes = append(outcomes, map[string]any{
			"query":   o.Query,
			"success": o.Success,
			"results": results,
			"error":   o.Error,
		})
	}

	msg := fmt.Sprintf("structured serialization failed: %v", cause)
	if resp.Error != nil {
		msg = *resp.Error
	}

	data, err := marshalJSON(map[string]any{
		"success":     resp.Success,
		"search_type": resp.SearchType,
		"results":     outcomes,
		"error":       msg,
	})
	if err != nil {
		return fallbackFailedText
	}
	return string(data)
}

func structuredResult(data []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(data)}},
		StructuredContent: json.RawMessage(data),
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
