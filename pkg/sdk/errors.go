package metasearch

import (
	"errors"

	"github.com/kailas-cloud/metasearch/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrUpstream              = domain.ErrUpstream
	ErrRerank                = domain.ErrRerank
	ErrUnsupportedSearchType = domain.ErrUnsupportedSearchType

	// ErrSearXNGRequired is returned by New without WithSearXNG.
	ErrSearXNGRequired = errors.New("metasearch: searxng url required (use WithSearXNG)")
)
