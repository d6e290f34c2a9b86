// Package rerank holds the transient relevance scores returned by a reranking model.
package rerank

import "sort"

// Score refers to a candidate by its position in the rerank request.
type Score struct {
	Index          int
	RelevanceScore float64
}

// SortByRelevance orders scores by descending relevance, keeping the
// service order for ties.
func SortByRelevance(scores []Score) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].RelevanceScore > scores[j].RelevanceScore
	})
}
