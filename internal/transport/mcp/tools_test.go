package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/metasearch/internal/domain/category"
	"github.com/kailas-cloud/metasearch/internal/domain/image"
	"github.com/kailas-cloud/metasearch/internal/domain/search/outcome"
	"github.com/kailas-cloud/metasearch/internal/domain/search/result"
	"github.com/kailas-cloud/metasearch/internal/transport/wire"
)

// --- Mocks ---

type mockTextSearcher struct {
	resp      outcome.Response
	called    bool
	lastQs    []string
	lastType  category.Category
	lastLimit *int
}

func (m *mockTextSearcher) Search(
	_ context.Context, queries []string, searchType category.Category, limit *int,
) outcome.Response {
	m.called = true
	m.lastQs = queries
	m.lastType = searchType
	m.lastLimit = limit
	return m.resp
}

type mockImageSearcher struct {
	resp      image.Response
	lastKws   []string
	lastLimit int
}

func (m *mockImageSearcher) Search(_ context.Context, keywords []string, limit int) image.Response {
	m.lastKws = keywords
	m.lastLimit = limit
	return m.resp
}

func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	ct, st := mcp.NewInMemoryTransports()
	ss, err := s.MCP().Connect(ctx, st, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func sampleResponse(t *testing.T) outcome.Response {
	t.Helper()
	r, ok := result.New("https://go.dev", "Go")
	require.True(t, ok)
	return outcome.NewResponse(category.News, []outcome.Outcome{outcome.NewOK("golang", []result.Result{r})})
}

// --- Tests ---

func TestOpenSearch_StructuredResult(t *testing.T) {
	searcher := &mockTextSearcher{resp: sampleResponse(t)}
	cs := connect(t, NewServer(nil, searcher, nil))

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name: toolOpenSearch,
		Arguments: map[string]any{
			"queries":     []string{"golang"},
			"search_type": "news",
			"limit":       5,
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	assert.Equal(t, []string{"golang"}, searcher.lastQs)
	assert.Equal(t, category.News, searcher.lastType)
	require.NotNil(t, searcher.lastLimit)
	assert.Equal(t, 5, *searcher.lastLimit)

	var got wire.AggregateResponse
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &got))
	assert.True(t, got.Success)
	assert.Equal(t, "news", got.SearchType)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "https://go.dev", got.Results[0].Results[0].URL)
	assert.NotNil(t, res.StructuredContent)
}

func TestOpenSearch_DefaultsWhenOmitted(t *testing.T) {
	searcher := &mockTextSearcher{resp: outcome.NewResponse(category.General, nil)}
	cs := connect(t, NewServer(nil, searcher, nil))

	_, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      toolOpenSearch,
		Arguments: map[string]any{"queries": []string{"a", "b"}},
	})
	require.NoError(t, err)

	assert.Equal(t, category.General, searcher.lastType)
	assert.Nil(t, searcher.lastLimit, "absent limit must stay distinguishable from zero")
}

func TestOpenSearch_ZeroLimitPassedThrough(t *testing.T) {
	searcher := &mockTextSearcher{resp: outcome.Fail(category.General, "limit must be greater than 0")}
	cs := connect(t, NewServer(nil, searcher, nil))

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      toolOpenSearch,
		Arguments: map[string]any{"queries": []string{"a"}, "limit": 0},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	require.NotNil(t, searcher.lastLimit)
	assert.Equal(t, 0, *searcher.lastLimit)
	assert.JSONEq(t,
		`{"success":false,"search_type":"general","results":[],"error":"limit must be greater than 0"}`,
		textOf(t, res),
	)
}

func TestOpenSearch_UnsupportedSearchType(t *testing.T) {
	searcher := &mockTextSearcher{}
	cs := connect(t, NewServer(nil, searcher, nil))

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      toolOpenSearch,
		Arguments: map[string]any{"queries": []string{"a"}, "search_type": "maps"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "unsupported search_type")
	assert.False(t, searcher.called)
}

func TestImageSearch(t *testing.T) {
	it, _ := image.NewItem("https://img/cat.jpg", "cat")
	images := &mockImageSearcher{resp: image.Response{
		Success: true,
		Results: []image.Result{{Query: "cats", Success: true, Images: []image.Item{it}}},
	}}
	cs := connect(t, NewServer(nil, &mockTextSearcher{}, images))

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      toolImageSearch,
		Arguments: map[string]any{"keywords": []string{"cats"}, "limit": 3},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	assert.Equal(t, []string{"cats"}, images.lastKws)
	assert.Equal(t, 3, images.lastLimit)
	assert.JSONEq(t, `{
		"success": true,
		"results": [{"query":"cats","success":true,"images":[{"image_url":"https://img/cat.jpg","description":"cat"}],"error":null}],
		"error": null
	}`, textOf(t, res))
}

func TestImageSearch_NotRegisteredWithoutService(t *testing.T) {
	cs := connect(t, NewServer(nil, &mockTextSearcher{}, nil))

	tools, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{toolOpenSearch}, names)
}

func TestSearchResult_Fallback(t *testing.T) {
	orig := marshalJSON
	t.Cleanup(func() { marshalJSON = orig })

	calls := 0
	marshalJSON = func(v any) ([]byte, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("boom")
		}
		return json.Marshal(v)
	}

	res := searchResult(context.Background(), wire.FromResponse(sampleResponse(t)))
	assert.Nil(t, res.StructuredContent)

	text := textOf(t, res)
	assert.JSONEq(t, `{
		"success": true,
		"search_type": "news",
		"results": [{"query":"golang","success":true,"results":[{"url":"https://go.dev","description":"Go"}],"error":null}],
		"error": "structured serialization failed: boom"
	}`, text)
}

func TestSearchResult_FallbackKeepsExistingError(t *testing.T) {
	orig := marshalJSON
	t.Cleanup(func() { marshalJSON = orig })

	calls := 0
	marshalJSON = func(v any) ([]byte, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("boom")
		}
		return json.Marshal(v)
	}

	resp := wire.FromResponse(outcome.Fail(category.General, "queries must not be empty"))
	text := textOf(t, searchResult(context.Background(), resp))
	assert.Contains(t, text, `"error":"queries must not be empty"`)
}

func TestSearchResult_FallbackFails(t *testing.T) {
	orig := marshalJSON
	t.Cleanup(func() { marshalJSON = orig })
	marshalJSON = func(any) ([]byte, error) { return nil, errors.New("boom") }

	res := searchResult(context.Background(), wire.FromResponse(sampleResponse(t)))
	assert.Equal(t, `{"success":false,"error":"fallback serialization failed"}`, textOf(t, res))
}
