package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()

	if !searchMetricsRegistered {
		t.Fatal("expected metrics to be marked registered")
	}

	// A second registration of the same collector must be rejected by the default registry.
	err := prometheus.Register(ReorderTotal)
	if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
		t.Fatalf("expected AlreadyRegisteredError, got %v", err)
	}
}

func TestReorderTotal_Counts(t *testing.T) {
	before := testutil.ToFloat64(ReorderTotal.WithLabelValues("skipped"))
	ReorderTotal.WithLabelValues("skipped").Inc()
	after := testutil.ToFloat64(ReorderTotal.WithLabelValues("skipped"))
	if after != before+1 {
		t.Errorf("expected %f, got %f", before+1, after)
	}
}
