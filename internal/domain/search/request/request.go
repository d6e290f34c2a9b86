package request

import (
	"strings"

	"github.com/kailas-cloud/metasearch/internal/domain"
	"github.com/kailas-cloud/metasearch/internal/domain/category"
)

// Search parameter limits.
const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// Validation errors. Their messages are returned to callers verbatim and
// both match domain.ErrInvalidArgument.
var (
	ErrNoQueries error = validationError("queries must not be empty")
	ErrZeroLimit error = validationError("limit must be greater than 0")
)

type validationError string

func (e validationError) Error() string { return string(e) }

func (e validationError) Is(target error) bool { return target == domain.ErrInvalidArgument }

// Request is a validated multi-query search.
type Request struct {
	queries  []string
	category category.Category
	limit    int
}

// Limits bounds the effective per-query result cap.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{Default: DefaultLimit, Max: MaxLimit}
}

// New validates search parameters. Queries are trimmed but blank ones are kept
// so each input position still produces an outcome. A nil limit selects the
// default; a supplied limit is clamped to the maximum without error.
func New(queries []string, c category.Category, limit *int, limits Limits) (Request, error) {
	if len(queries) == 0 {
		return Request{}, ErrNoQueries
	}

	effective := limits.Default
	if limit != nil {
		if *limit <= 0 {
			return Request{}, ErrZeroLimit
		}
		effective = *limit
	}
	if effective > limits.Max {
		effective = limits.Max
	}

	trimmed := make([]string, len(queries))
	for i, q := range queries {
		trimmed[i] = strings.TrimSpace(q)
	}

	if c == "" {
		c = category.General
	}

	return Request{queries: trimmed, category: c, limit: effective}, nil
}

// Queries returns the trimmed queries in input order.
func (r *Request) Queries() []string { return r.queries }

// Category returns the search vertical.
func (r *Request) Category() category.Category { return r.category }

// Limit returns the effective per-query cap.
func (r *Request) Limit() int { return r.limit }
