package health

import "context"

// UpstreamChecker checks search engine availability.
type UpstreamChecker interface {
	HealthCheck(ctx context.Context) error
}
