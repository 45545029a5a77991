package aggregation

// ==================== Classification Thresholds ====================

// Archetype cascade thresholds. The cascade in archetype.go evaluates
// rules in a fixed order; these only parameterize the individual rules.
const (
	HintLoverMinHints         = 2
	SpeedrunnerMaxSolveSecs   = 40
	HighAccuracyPct           = 80
	SniperMaxAttempts         = 2
	StrugglerMaxCompletionPct = 40
	ExplorerMinUniqueCorrect  = 8
)

// RareAnswerMaxPlayers is the largest distinct-player count an answer
// can have and still count as rare.
const RareAnswerMaxPlayers = 2

// MinPaceSampleSize is the smallest solve-time population for which a
// pace percentile is surfaced. Below it the rank is withheld (nil)
// rather than reported as a misleading extreme.
const MinPaceSampleSize = 5

// ==================== Error Messages ====================

const (
	ErrMsgInvalidDateKey  = "invalid date key"
	ErrMsgFetchEvents     = "failed to fetch attempt events: %w"
	ErrMsgFetchMasters    = "failed to fetch user masters: %w"
	ErrMsgFetchProfiles   = "failed to fetch existing profiles: %w"
	ErrMsgFetchAggregates = "failed to fetch existing aggregates: %w"
	ErrMsgFetchBadges     = "failed to fetch existing badges: %w"
	ErrMsgFetchCohorts    = "failed to fetch existing cohorts: %w"
	ErrMsgFetchPushTasks  = "failed to fetch existing push tasks: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgRunStarted       = "Aggregation run started"
	LogMsgRunCompleted     = "Aggregation run completed"
	LogMsgNoEvents         = "No attempt events for date, nothing to aggregate"
	LogMsgEventsNormalized = "Attempt events normalized"
	LogMsgProfilesBuilt    = "User daily profiles computed"
	LogMsgTableFlushFailed = "Table flush failed, continuing with remaining tables"
)

// ==================== Table Names ====================

// Table labels used in run summaries and metrics
const (
	TableProfiles    = "user_daily_profiles"
	TableMasters     = "user_masters"
	TableAggregates  = "daily_aggregates"
	TableRegionStats = "region_stats"
	TableAnswerStats = "answer_stats"
	TableBadges      = "badges"
	TableCohorts     = "cohorts"
	TablePushTasks   = "push_tasks"
)
