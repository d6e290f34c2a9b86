package health

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/metasearch/internal/logger"
)

// DefaultProbeTimeout bounds the SearXNG reachability probe.
const DefaultProbeTimeout = 5 * time.Second

// Status is the overall service state.
type Status string

const (
	// Healthy means SearXNG answered the probe.
	Healthy Status = "ok"
	// Degraded means SearXNG is unreachable; searches will fail per query.
	Degraded Status = "degraded"
)

// CheckResult is the state of one component.
type CheckResult string

// Component states. Probed components report ok/error, optional ones
// configured/disabled.
const (
	CheckOK         CheckResult = "ok"
	CheckError      CheckResult = "error"
	CheckConfigured CheckResult = "configured"
	CheckDisabled   CheckResult = "disabled"
)

// Component names used as Report.Checks keys.
const (
	ComponentSearXNG = "searxng"
	ComponentRerank  = "rerank"
)

// Report is the /health body.
type Report struct {
	Status  Status                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks"`
}

// Option configures the Service.
type Option func(*Service)

// WithProbeTimeout overrides DefaultProbeTimeout. Non-positive values are ignored.
func WithProbeTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.probeTimeout = d
		}
	}
}

// WithVersion sets the version reported in every Report.
func WithVersion(v string) Option {
	return func(s *Service) { s.version = v }
}

// Service builds health reports.
type Service struct {
	upstream         UpstreamChecker
	rerankConfigured bool
	probeTimeout     time.Duration
	version          string
}

// New creates a Service. Only SearXNG is probed; the reranker is reported
// from configuration so /health never spends rerank quota.
func New(upstream UpstreamChecker, rerankConfigured bool, opts ...Option) *Service {
	s := &Service{
		upstream:         upstream,
		rerankConfigured: rerankConfigured,
		probeTimeout:     DefaultProbeTimeout,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Check probes SearXNG and assembles the report.
func (s *Service) Check(ctx context.Context) Report {
	r := Report{
		Status:  Healthy,
		Version: s.version,
		Checks: map[string]CheckResult{
			ComponentSearXNG: CheckOK,
			ComponentRerank:  CheckDisabled,
		},
	}

	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	start := time.Now()
	if err := s.upstream.HealthCheck(probeCtx); err != nil {
		logger.FromContext(ctx).Warn("searxng health check failed",
			zap.Error(err),
			zap.Duration("latency", time.Since(start)),
		)
		r.Checks[ComponentSearXNG] = CheckError
		r.Status = Degraded
	}

	if s.rerankConfigured {
		r.Checks[ComponentRerank] = CheckConfigured
	}
	return r
}
