package analytics

import "time"

// Global analytics cache sizing. Day rollups are immutable once the
// aggregation run finishes, so a short TTL only matters around re-runs.
const (
	GlobalCacheSize = 64
	GlobalCacheTTL  = 10 * time.Minute
)

// TopAnswersLimit caps how many ranked answers the global view returns
const TopAnswersLimit = 20

// UserBadgeLimit caps the badge history returned with a personal view
const UserBadgeLimit = 50

// ==================== Error Messages ====================

const (
	ErrMsgGetProfileFailed   = "failed to get user profile: %w"
	ErrMsgGetMasterFailed    = "failed to get user master: %w"
	ErrMsgGetBadgesFailed    = "failed to get badges: %w"
	ErrMsgGetAggregateFailed = "failed to get daily aggregate: %w"
	ErrMsgNoAggregate        = "no aggregate for date"
)

// ==================== Log Messages ====================

const (
	LogMsgUserAnalyticsCalled   = "GetUserAnalytics called"
	LogMsgGlobalAnalyticsCalled = "GetGlobalAnalytics called"
	LogMsgGlobalCacheHit        = "Global analytics served from cache"
)
