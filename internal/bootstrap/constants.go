package bootstrap

// Shutdown messages
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgWorkerShutdownFailed = "Aggregation worker shutdown failed"
	LogMsgShutdownComplete     = "Shutdown complete"
)
