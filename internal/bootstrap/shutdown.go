package bootstrap

import (
	"context"
	"log/slog"

	"github.com/questday/qotd-backend/internal/database"
	"github.com/questday/qotd-backend/internal/server"
	"github.com/questday/qotd-backend/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server            *server.Server
	AggregationWorker *worker.AggregationWorker
	DBPool            database.Pool
}

// GracefulShutdown stops the application components in order:
// 1. Worker (cancel the pending timer, wait for an in-flight run)
// 2. HTTP server (stop accepting new requests, drain in-flight ones)
// 3. Database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.AggregationWorker != nil {
		if err := components.AggregationWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgWorkerShutdownFailed, "error", err)
		}
	}

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgShutdownComplete)
}
