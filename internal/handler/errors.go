package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidDateKey    = "Invalid date_key, expected YYYY-MM-DD"

	// Attempt log error messages
	ErrMsgLogAttemptFailed = "Failed to log attempt event"

	// Aggregation error messages
	ErrMsgAggregationFailed = "Aggregation run failed"

	// Analytics error messages
	ErrMsgGetUserAnalyticsFailed   = "Failed to get user analytics"
	ErrMsgGetGlobalAnalyticsFailed = "Failed to get global analytics"
	ErrMsgUserNotFoundHTTP         = "user not found"
	ErrMsgDayNotAggregated         = "No aggregate for that date"

	// Push queue error messages
	ErrMsgGetPendingPushFailed = "Failed to get pending push tasks"
	ErrMsgMarkDeliveredFailed  = "Failed to mark push tasks delivered"
	ErrMsgNoTaskIDs            = "At least one task id is required"
)

// Success messages for API responses
const (
	MsgAttemptLoggedSuccess = "Attempt logged successfully"
)
