package outcome

import (
	"github.com/kailas-cloud/metasearch/internal/domain/category"
	"github.com/kailas-cloud/metasearch/internal/domain/search/result"
)

// Outcome is the result of dispatching one query.
type Outcome struct {
	query   string
	success bool
	results []result.Result
	err     string
}

// NewOK creates a successful outcome. Results are copied.
func NewOK(query string, results []result.Result) Outcome {
	return Outcome{query: query, success: true, results: append([]result.Result(nil), results...)}
}

// NewError creates a failed outcome carrying a human-readable message.
func NewError(query, msg string) Outcome {
	return Outcome{query: query, err: msg}
}

// Query returns the trimmed query text.
func (o Outcome) Query() string { return o.query }

// Success reports whether the backend call and decode succeeded.
func (o Outcome) Success() bool { return o.success }

// Results returns a copy of the ordered, capped results.
func (o Outcome) Results() []result.Result { return append([]result.Result(nil), o.results...) }

// Err returns the failure message, empty on success.
func (o Outcome) Err() string { return o.err }

// Response aggregates the outcomes of one batch in input order.
type Response struct {
	success  bool
	category category.Category
	outcomes []Outcome
	err      string
}

// NewResponse aggregates outcomes. The batch succeeds if any outcome did.
func NewResponse(c category.Category, outcomes []Outcome) Response {
	success := false
	for _, o := range outcomes {
		if o.success {
			success = true
			break
		}
	}
	return Response{success: success, category: c, outcomes: outcomes}
}

// Fail creates a response rejected before any dispatch.
func Fail(c category.Category, msg string) Response {
	return Response{category: c, err: msg}
}

// Success reports whether at least one query succeeded.
func (r Response) Success() bool { return r.success }

// SearchType returns the category label of the batch.
func (r Response) SearchType() string { return r.category.Label() }

// Outcomes returns the per-query outcomes in input order.
func (r Response) Outcomes() []Outcome { return r.outcomes }

// Err returns the batch-level failure message, empty when outcomes exist.
func (r Response) Err() string { return r.err }
