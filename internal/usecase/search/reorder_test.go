package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kailas-cloud/metasearch/internal/domain/rerank"
	"github.com/kailas-cloud/metasearch/internal/domain/search/request"
)

func requestLimits(def, maxLimit int) request.Limits {
	return request.Limits{Default: def, Max: maxLimit}
}

func TestRerankQuery(t *testing.T) {
	assert.Equal(t,
		`用户使用搜索引擎搜索，正在进行news的类型的搜索，搜索目标是"weather"`,
		RerankQuery("news", "weather"),
	)
}

func TestReorder_SkippedWhenWithinLimit(t *testing.T) {
	rr := &mockReranker{scores: []rerank.Score{{Index: 2}, {Index: 1}, {Index: 0}}}
	r := NewReorderer(rr)
	in := makeResults("a", 3)

	out := r.Reorder(context.Background(), "general", "q", in, 20)

	assert.Equal(t, urls(in), urls(out))
	assert.Zero(t, rr.calls.Load())
}

func TestReorder_DropsUnreferencedCandidates(t *testing.T) {
	rr := &mockReranker{scores: []rerank.Score{{Index: 3, RelevanceScore: 0.8}, {Index: 0, RelevanceScore: 0.2}}}
	r := NewReorderer(rr)
	in := makeResults("c", 6)

	out := r.Reorder(context.Background(), "general", "q", in, 5)

	assert.Equal(t, []string{"https://c/3", "https://c/0"}, urls(out))
	assert.Equal(t, int32(1), rr.calls.Load())
}

func TestReorder_SendsDocumentsInIndexOrder(t *testing.T) {
	rr := &mockReranker{scores: []rerank.Score{{Index: 0}}}
	r := NewReorderer(rr)
	in := makeResults("d", 3)

	r.Reorder(context.Background(), "images", "cats", in, 1)

	query, docs := rr.last()
	assert.Equal(t, []string{"https://d/0 - d 0", "https://d/1 - d 1", "https://d/2 - d 2"}, docs)
	assert.Equal(t, `用户使用搜索引擎搜索，正在进行images的类型的搜索，搜索目标是"cats"`, query)
}

func TestReorder_SkipsInvalidIndices(t *testing.T) {
	rr := &mockReranker{scores: []rerank.Score{{Index: 7}, {Index: 2}, {Index: -1}, {Index: 1}}}
	r := NewReorderer(rr)

	out := r.Reorder(context.Background(), "general", "q", makeResults("e", 4), 3)

	assert.Equal(t, []string{"https://e/2", "https://e/1"}, urls(out))
}

func TestReorder_RepeatedIndexKeptOnce(t *testing.T) {
	rr := &mockReranker{scores: []rerank.Score{
		{Index: 3, RelevanceScore: 0.9},
		{Index: 3, RelevanceScore: 0.8},
		{Index: 0, RelevanceScore: 0.5},
	}}
	in := makeResults("a", 5)

	out := NewReorderer(rr).Reorder(context.Background(), "general", "q", in, 4)
	assert.Equal(t, []string{"https://a/3", "https://a/0"}, urls(out))

	out = NewReorderer(rr, WithAppendUnranked(true)).Reorder(context.Background(), "general", "q", in, 4)
	assert.Equal(t, []string{"https://a/3", "https://a/0", "https://a/1", "https://a/2"}, urls(out))
}

func TestReorder_FallbackOnError(t *testing.T) {
	rr := &mockReranker{err: errors.New("rerank failed: siliconflow returned status 500")}
	r := NewReorderer(rr)
	in := makeResults("f", 5)

	out := r.Reorder(context.Background(), "general", "q", in, 3)

	assert.Equal(t, urls(in[:3]), urls(out))
}

func TestReorder_AppendUnranked(t *testing.T) {
	rr := &mockReranker{scores: []rerank.Score{{Index: 3}, {Index: 0}}}
	r := NewReorderer(rr, WithAppendUnranked(true))

	out := r.Reorder(context.Background(), "general", "q", makeResults("g", 5), 4)

	assert.Equal(t, []string{"https://g/3", "https://g/0", "https://g/1", "https://g/2"}, urls(out))
}

func TestReorder_NilRerankerTruncates(t *testing.T) {
	var r *Reorderer
	out := r.Reorder(context.Background(), "general", "q", makeResults("h", 5), 2)
	assert.Len(t, out, 2)

	out = NewReorderer(nil).Reorder(context.Background(), "general", "q", makeResults("h", 5), 3)
	assert.Len(t, out, 3)
}
