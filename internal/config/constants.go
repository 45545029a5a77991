package config

// Default values for environment-driven settings
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "INFO"
	DefaultLogFormat   = "json"
	DefaultDBUser      = "postgres"
	DefaultDBPassword  = "postgres"
	DefaultDBHost      = "localhost"
	DefaultDBPort      = "5432"
	DefaultDBName      = "qotd"
	DefaultEnvironment = "dev"
	DefaultServiceName = "qotd-metrics"

	// DefaultReferenceTZ anchors the game day; the daily trigger and the
	// "yesterday" default for aggregation are computed in this zone.
	DefaultReferenceTZ = "Europe/London"

	// DefaultWriteBatchSize bounds how many rows go into one batched
	// create/update against the store.
	DefaultWriteBatchSize = 10

	// DefaultFetchLimit bounds how many attempt events a single run reads.
	DefaultFetchLimit = 5000

	// DefaultAggregateHour is the local hour at which the daily worker
	// triggers aggregation of the previous day.
	DefaultAggregateHour = 2
)
