// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guestfit_analyses_completed_total",
			Help: "Total number of guest fit analyses completed",
		},
		[]string{"verdict"},
	)

	AnalysesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guestfit_analyses_failed_total",
			Help: "Total number of guest fit analyses failed",
		},
		[]string{"error_code"},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "guestfit_analysis_duration_seconds",
			Help: "Duration of a full analysis in seconds",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guestfit_cache_lookups_total",
			Help: "Result cache lookups by outcome",
		},
		[]string{"outcome"}, // hit, miss; an expired entry reads as a miss
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guestfit_llm_requests_total",
			Help: "LLM generation attempts by endpoint and status",
		},
		[]string{"model", "status"}, // status: ok, error, skipped_unhealthy
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "guestfit_llm_request_duration_seconds",
			Help: "Duration of individual LLM generation attempts in seconds",
		},
		[]string{"model"},
	)
)
