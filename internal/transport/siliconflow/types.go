package siliconflow

import "encoding/json"

type rerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
}

type rerankResponse struct {
	ID      string          `json:"id"`
	Results []rerankItem    `json:"results"`
	Meta    json.RawMessage `json:"meta,omitempty"`
}

type rerankItem struct {
	Index          int     `json:"index"`
	RelevanceScore float64 `json:"relevance_score"`
}
