// Package metrics exposes the Prometheus collectors of the API.
//
// Usage:
//
//	metrics.RecordValidation(false, "forbidden_keyword")
//	metrics.RecordInsight("generated")
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by route template and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency by route template.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// QueryValidationsTotal counts ad-hoc query verdicts. reason is empty for accepted queries.
	QueryValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_query_validations_total",
			Help: "Total number of ad-hoc query validations by outcome",
		},
		[]string{"outcome", "reason"},
	)

	// RowsReturned tracks the size of ad-hoc query results.
	RowsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "api_query_rows_returned",
			Help:    "Rows returned by ad-hoc queries",
			Buckets: []float64{0, 1, 10, 100, 1000, 10000},
		},
	)

	// AIInsightsTotal counts insight generation attempts by outcome
	// (generated, disabled, empty, error).
	AIInsightsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_ai_insights_total",
			Help: "Total number of AI insight generations by outcome",
		},
		[]string{"outcome"},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "api_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// RecordValidation counts one query verdict.
func RecordValidation(accepted bool, reason string) {
	if accepted {
		QueryValidationsTotal.WithLabelValues("accepted", "").Inc()
		return
	}
	QueryValidationsTotal.WithLabelValues("rejected", reason).Inc()
}

// RecordInsight counts one insight outcome.
func RecordInsight(outcome string) {
	AIInsightsTotal.WithLabelValues(outcome).Inc()
}
