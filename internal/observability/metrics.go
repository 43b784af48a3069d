// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tradecheck/internal/domain"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Normalization metrics
	RowsNormalized prometheus.Counter
	RowsDropped    *prometheus.CounterVec
	TimesSwapped   prometheus.Counter

	// Rule metrics
	RulesEvaluated  *prometheus.CounterVec
	ViolationsFound *prometheus.CounterVec
	RuleDuration    *prometheus.HistogramVec

	// Run metrics
	RunsTotal   *prometheus.CounterVec
	RunDuration prometheus.Histogram

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "tradecheck"
	}

	return &Metrics{
		RowsNormalized: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalization",
			Name:      "rows_normalized_total",
			Help:      "Total number of trade rows successfully normalized",
		}),
		RowsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalization",
			Name:      "rows_dropped_total",
			Help:      "Total number of trade rows dropped by reason",
		}, []string{"reason"}),
		TimesSwapped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalization",
			Name:      "times_swapped_total",
			Help:      "Total number of rows with reversed open/close timestamps repaired",
		}),

		RulesEvaluated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rules",
			Name:      "evaluated_total",
			Help:      "Total number of rule evaluations by rule and status",
		}, []string{"rule", "status"}),
		ViolationsFound: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rules",
			Name:      "violations_total",
			Help:      "Total number of violations found by rule",
		}, []string{"rule"}),
		RuleDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rules",
			Name:      "duration_seconds",
			Help:      "Rule evaluation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"rule"}),

		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "runs_total",
			Help:      "Total number of evaluation runs by overall status",
		}, []string{"status"}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "run_duration_seconds",
			Help:      "Evaluation run duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordRowNormalized increments the normalized rows counter.
func RecordRowNormalized() {
	DefaultMetrics.RowsNormalized.Inc()
}

// RecordRowDropped records a dropped row with its reason.
func RecordRowDropped(reason string) {
	DefaultMetrics.RowsDropped.WithLabelValues(reason).Inc()
}

// RecordTimesSwapped increments the repaired-timestamps counter.
func RecordTimesSwapped() {
	DefaultMetrics.TimesSwapped.Inc()
}

// RecordRuleEvaluated records one rule evaluation and its findings.
func RecordRuleEvaluated(result domain.RuleResult, seconds float64) {
	rule := strconv.Itoa(result.RuleNumber)
	DefaultMetrics.RulesEvaluated.WithLabelValues(rule, string(result.Status)).Inc()
	DefaultMetrics.RuleDuration.WithLabelValues(rule).Observe(seconds)
	if n := result.ViolationCount(); n > 0 {
		DefaultMetrics.ViolationsFound.WithLabelValues(rule).Add(float64(n))
	}
}

// RecordRunCompleted records a finished evaluation run.
func RecordRunCompleted(status string, durationSeconds float64) {
	DefaultMetrics.RunsTotal.WithLabelValues(status).Inc()
	DefaultMetrics.RunDuration.Observe(durationSeconds)
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}
