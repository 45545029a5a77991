package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Pipeline Metrics
var (
	AggregationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAggregationRuns,
			Help: HelpTextAggregationRuns,
		},
		[]string{LabelStatus},
	)

	AggregationRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameAggregationRunDuration,
			Help:    HelpTextAggregationRunDuration,
			Buckets: RunDurationBuckets,
		},
	)

	AggregationRowsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAggregationRowsWritten,
			Help: HelpTextAggregationRowsWritten,
		},
		[]string{LabelTable, LabelOp},
	)

	AggregationTableErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAggregationTableErrors,
			Help: HelpTextAggregationTableErrors,
		},
		[]string{LabelTable},
	)

	AggregationEventsRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAggregationEventsRead,
			Help: HelpTextAggregationEventsRead,
		},
	)
)

// Business Metrics
var (
	AttemptEventsLogged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAttemptEventsLogged,
			Help: HelpTextAttemptEventsLogged,
		},
	)

	BadgesAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBadgesAwarded,
			Help: HelpTextBadgesAwarded,
		},
		[]string{LabelName},
	)

	PushTasksQueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePushTasksQueued,
			Help: HelpTextPushTasksQueued,
		},
		[]string{LabelType},
	)

	PushTasksDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePushTasksDelivered,
			Help: HelpTextPushTasksDelivered,
		},
	)
)

// RecordRowsWritten adds created/updated counts for one table
func RecordRowsWritten(table string, created, updated int) {
	if created > 0 {
		AggregationRowsWritten.WithLabelValues(table, OpCreate).Add(float64(created))
	}
	if updated > 0 {
		AggregationRowsWritten.WithLabelValues(table, OpUpdate).Add(float64(updated))
	}
}
