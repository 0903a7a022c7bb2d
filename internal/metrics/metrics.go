// Package metrics defines the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "feedback_portal"

// FeedbackMetrics tracks the feedback lifecycle and store health.
type FeedbackMetrics struct {
	CreatedTotal *prometheus.CounterVec
	DeletedTotal prometheus.Counter
	Sentiment    prometheus.Histogram
	StoreErrors  *prometheus.CounterVec
	ErrorsTotal  *prometheus.CounterVec
	StatsRecords prometheus.Gauge
}

// NewFeedbackMetrics creates and registers feedback metrics on the given registry.
func NewFeedbackMetrics(reg prometheus.Registerer) *FeedbackMetrics {
	m := &FeedbackMetrics{
		CreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feedback",
			Name:      "created_total",
			Help:      "Feedback records created, by category.",
		}, []string{"category"}),
		DeletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feedback",
			Name:      "deleted_total",
			Help:      "Feedback records deleted.",
		}),
		Sentiment: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "feedback",
			Name:      "sentiment_score",
			Help:      "Sentiment score of created feedback.",
			Buckets:   []float64{-1, -0.5, -0.01, 0.01, 0.5, 1},
		}),
		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Failed store operations, by operation.",
		}, []string{"operation"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "Error responses, by error type.",
		}, []string{"type"}),
		StatsRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stats",
			Name:      "records",
			Help:      "Records read by the most recent stats computation.",
		}),
	}

	reg.MustRegister(m.CreatedTotal, m.DeletedTotal, m.Sentiment, m.StoreErrors, m.ErrorsTotal, m.StatsRecords)
	return m
}
