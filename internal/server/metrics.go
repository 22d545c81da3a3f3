package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests.
	// Labels: route, method, status
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cv_coach",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	// RequestDuration tracks request latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cv_coach",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// DocumentsTotal counts uploaded documents.
	// Labels: kind (pdf, docx, ...), result (parsed, empty, error)
	DocumentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cv_coach",
			Subsystem: "parse",
			Name:      "documents_total",
			Help:      "Total number of uploaded documents by kind and outcome",
		},
		[]string{"kind", "result"},
	)

	// EntriesTotal counts entries found per section.
	EntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cv_coach",
			Subsystem: "parse",
			Name:      "entries_total",
			Help:      "Total number of entries extracted by section",
		},
		[]string{"section"},
	)

	// AICallsTotal counts interview and review calls.
	// Labels: operation (interview, review), result (success, error)
	AICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cv_coach",
			Subsystem: "ai",
			Name:      "calls_total",
			Help:      "Total number of AI-backed operations by outcome",
		},
		[]string{"operation", "result"},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cv_coach",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected with 429",
		},
		[]string{"route"},
	)
)

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
