// Package wire defines the JSON shapes returned by the MCP tools and the CLI.
package wire

import (
	"github.com/kailas-cloud/metasearch/internal/domain/image"
	"github.com/kailas-cloud/metasearch/internal/domain/search/outcome"
)

// SearchResult is one text search hit.
type SearchResult struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// QueryOutcome is the result of one query.
type QueryOutcome struct {
	Query   string         `json:"query"`
	Success bool           `json:"success"`
	Results []SearchResult `json:"results"`
	Error   *string        `json:"error"`
}

// AggregateResponse is the opensearch tool result.
type AggregateResponse struct {
	Success    bool           `json:"success"`
	SearchType string         `json:"search_type"`
	Results    []QueryOutcome `json:"results"`
	Error      *string        `json:"error"`
}

// ImageSearchItem is one image hit.
type ImageSearchItem struct {
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

// ImageSearchResult is the result of one keyword.
type ImageSearchResult struct {
	Query   string            `json:"query"`
	Success bool              `json:"success"`
	Images  []ImageSearchItem `json:"images"`
	Error   *string           `json:"error"`
}

// ImageSearchResponse is the image_search tool result.
type ImageSearchResponse struct {
	Success bool                `json:"success"`
	Results []ImageSearchResult `json:"results"`
	Error   *string             `json:"error"`
}

// FromResponse converts an aggregated text search response.
func FromResponse(r outcome.Response) AggregateResponse {
	outcomes := r.Outcomes()
	out := AggregateResponse{
		Success:    r.Success(),
		SearchType: r.SearchType(),
		Results:    make([]QueryOutcome, 0, len(outcomes)),
		Error:      optional(r.Err()),
	}
	for _, o := range outcomes {
		results := o.Results()
		qo := QueryOutcome{
			Query:   o.Query(),
			Success: o.Success(),
			Results: make([]SearchResult, 0, len(results)),
			Error:   optional(o.Err()),
		}
		for _, res := range results {
			qo.Results = append(qo.Results, SearchResult{URL: res.URL(), Description: res.Description()})
		}
		out.Results = append(out.Results, qo)
	}
	return out
}

// FromImageResponse converts an aggregated image search response.
func FromImageResponse(r image.Response) ImageSearchResponse {
	out := ImageSearchResponse{
		Success: r.Success,
		Results: make([]ImageSearchResult, 0, len(r.Results)),
		Error:   optional(r.Err),
	}
	for _, res := range r.Results {
		ir := ImageSearchResult{
			Query:   res.Query,
			Success: res.Success,
			Images:  make([]ImageSearchItem, 0, len(res.Images)),
			Error:   optional(res.Err),
		}
		for _, it := range res.Images {
			ir.Images = append(ir.Images, ImageSearchItem{ImageURL: it.ImageURL(), Description: it.Description()})
		}
		out.Results = append(out.Results, ir)
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
