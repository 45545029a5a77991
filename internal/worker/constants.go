package worker

// Log messages for the daily aggregation worker
const (
	LogMsgAggregationStandby   = "Daily aggregation standby"
	LogMsgAggregationApproach  = "Daily aggregation scheduled"
	LogMsgAggregationStarting  = "Daily aggregation starting"
	LogMsgAggregationCompleted = "Daily aggregation completed"
	LogMsgAggregationFailed    = "Daily aggregation failed"
	LogMsgAggregationRetry     = "Daily aggregation retry scheduled"
)
