package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Pipeline metric names
const (
	MetricNameAggregationRuns        = "aggregation_runs_total"
	MetricNameAggregationRunDuration = "aggregation_run_duration_seconds"
	MetricNameAggregationRowsWritten = "aggregation_rows_written_total"
	MetricNameAggregationTableErrors = "aggregation_table_errors_total"
	MetricNameAggregationEventsRead  = "aggregation_events_read_total"
)

// Business metric names
const (
	MetricNameAttemptEventsLogged = "attempt_events_logged_total"
	MetricNameBadgesAwarded       = "badges_awarded_total"
	MetricNamePushTasksQueued     = "push_tasks_queued_total"
	MetricNamePushTasksDelivered  = "push_tasks_delivered_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Pipeline metric help text
const (
	HelpTextAggregationRuns        = "Total number of daily aggregation runs"
	HelpTextAggregationRunDuration = "Daily aggregation run duration in seconds"
	HelpTextAggregationRowsWritten = "Total rows written by the aggregation pipeline"
	HelpTextAggregationTableErrors = "Total per-table flush failures during aggregation"
	HelpTextAggregationEventsRead  = "Total attempt events read by aggregation runs"
)

// Business metric help text
const (
	HelpTextAttemptEventsLogged = "Total attempt events accepted by the logging endpoint"
	HelpTextBadgesAwarded       = "Total badges awarded"
	HelpTextPushTasksQueued     = "Total push tasks queued"
	HelpTextPushTasksDelivered  = "Total push tasks marked delivered"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelTable  = "table"
	LabelOp     = "op"
	LabelType   = "type"
	LabelName   = "name"
)

// Label values for the run status label
const (
	StatusOK     = "ok"
	StatusError  = "error"
	StatusNoData = "no_data"
)

// Label values for the write op label
const (
	OpCreate = "create"
	OpUpdate = "update"
)

// HTTPLatencyBuckets covers fast reads through full pipeline runs
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// RunDurationBuckets covers the expected spread of batch run times
var RunDurationBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120}
