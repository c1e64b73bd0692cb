package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rl1809/stock-control/internal/core/domain"
)

// PrometheusObserver counts inventory operations by outcome and records
// their latency.
type PrometheusObserver struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	o := &PrometheusObserver{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stock",
			Name:      "operations_total",
			Help:      "Inventory operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stock",
			Name:      "operation_duration_seconds",
			Help:      "Inventory operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"operation"}),
	}
	reg.MustRegister(o.operations, o.duration)
	return o
}

func (o *PrometheusObserver) Observe(operation string, outcome domain.Outcome, elapsed time.Duration) {
	o.operations.WithLabelValues(operation, string(outcome)).Inc()
	o.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
