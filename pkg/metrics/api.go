package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APICallMetrics records outcome metadata for outbound backend calls.
type APICallMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewAPICallMetrics registers the call metrics on the provided registerer.
func NewAPICallMetrics(reg prometheus.Registerer) *APICallMetrics {
	if reg == nil {
		return &APICallMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "api_call_duration_seconds",
		Help:    "Duration of backend API calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_call_success",
		Help: "Successful backend API calls.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_call_failure",
		Help: "Failed backend API calls.",
	}, []string{"operation", "reason"})
	reg.MustRegister(duration, success, failure)
	return &APICallMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named operation.
func (a *APICallMetrics) ObserveDuration(operation string, duration time.Duration) {
	if a == nil || a.duration == nil {
		return
	}
	a.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (a *APICallMetrics) IncSuccess(operation string) {
	if a == nil || a.success == nil {
		return
	}
	a.success.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (a *APICallMetrics) IncFailure(operation, reason string) {
	if a == nil || a.failure == nil {
		return
	}
	a.failure.WithLabelValues(normalizeLabel(operation), normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
