package rerank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByRelevance(t *testing.T) {
	scores := []Score{
		{Index: 0, RelevanceScore: 0.1},
		{Index: 1, RelevanceScore: 0.9},
		{Index: 2, RelevanceScore: 0.5},
		{Index: 3, RelevanceScore: 0.9},
	}
	SortByRelevance(scores)

	got := make([]int, len(scores))
	for i, s := range scores {
		got[i] = s.Index
	}
	assert.Equal(t, []int{1, 3, 2, 0}, got)
}
