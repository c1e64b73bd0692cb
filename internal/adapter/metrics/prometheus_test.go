package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/rl1809/stock-control/internal/core/domain"
)

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	o := NewPrometheusObserver(reg)

	o.Observe("withdraw", domain.OutcomeSuccess, time.Millisecond)
	o.Observe("withdraw", domain.OutcomeSuccess, 2*time.Millisecond)
	o.Observe("withdraw", domain.OutcomeInsufficientStock, time.Millisecond)

	if got := testutil.ToFloat64(o.operations.WithLabelValues("withdraw", "success")); got != 2 {
		t.Errorf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(o.operations.WithLabelValues("withdraw", "insufficient_stock")); got != 1 {
		t.Errorf("expected 1 insufficient_stock, got %v", got)
	}
	if n := testutil.CollectAndCount(o.duration); n != 1 {
		t.Errorf("expected 1 histogram series, got %d", n)
	}
}

func TestNewPrometheusObserver_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusObserver(reg)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	NewPrometheusObserver(reg)
}
