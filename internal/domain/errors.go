package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstream signals a failed call to the upstream search engine.
	ErrUpstream = errors.New("upstream error")
	// ErrRerank signals a failed call to the reranking service.
	ErrRerank = errors.New("rerank failed")
	// ErrInvalidArgument signals a request rejected before dispatch.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedSearchType signals a search type outside the known categories.
	ErrUnsupportedSearchType = errors.New("unsupported search_type")
)

// Upstream operations reported in UpstreamError.
const (
	OpRequest = "request"
	OpDecode  = "decode"
)

// UpstreamError describes one failed HTTP exchange with an external service.
// A non-zero StatusCode means the service answered with a non-2xx status.
type UpstreamError struct {
	Service    string
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
	case e.Op == OpDecode:
		return fmt.Sprintf("decode %s response failed: %v", e.Service, e.Err)
	default:
		return fmt.Sprintf("%s %s failed: %v", e.Op, e.Service, e.Err)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Is makes every UpstreamError match ErrUpstream.
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// NewStatusError creates an UpstreamError for a non-2xx response.
func NewStatusError(service string, status int) error {
	return &UpstreamError{Service: service, Op: OpRequest, StatusCode: status}
}

// NewRequestError creates an UpstreamError for a failed round trip.
func NewRequestError(service string, err error) error {
	return &UpstreamError{Service: service, Op: OpRequest, Err: err}
}

// NewDecodeError creates an UpstreamError for an undecodable response body.
func NewDecodeError(service string, err error) error {
	return &UpstreamError{Service: service, Op: OpDecode, Err: err}
}
