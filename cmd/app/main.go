package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/questday/qotd-backend/internal/aggregation"
	"github.com/questday/qotd-backend/internal/analytics"
	"github.com/questday/qotd-backend/internal/bootstrap"
	"github.com/questday/qotd-backend/internal/config"
	"github.com/questday/qotd-backend/internal/database"
	"github.com/questday/qotd-backend/internal/logger"
	"github.com/questday/qotd-backend/internal/server"
	"github.com/questday/qotd-backend/internal/worker"
)

// ShutdownTimeout bounds how long graceful shutdown may take
const ShutdownTimeout = 30 * time.Second

// @title QOTD Metrics & Badge Aggregation API
// @version 1.0
// @description Daily aggregation engine for the question-of-the-day game: attempt ingestion, per-user profiles, global rollups, streaks, badges, retention cohorts and push task queueing.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	})

	slog.Info("Starting qotd-backend",
		"environment", cfg.Environment,
		"version", cfg.Version,
		"reference_tz", cfg.ReferenceTZ,
		"aggregate_hour", cfg.AggregateHour)

	dbPool, err := database.NewPool(context.Background(), cfg.GetDBConnString(),
		database.DefaultMaxConnections,
		database.DefaultMaxIdleTime,
		database.DefaultMaxLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	aggregationService := aggregation.NewService(repos.ForAggregation(), cfg.WriteBatchSize, cfg.FetchLimit)
	analyticsService := analytics.NewService(repos.Profiles, repos.Masters, repos.Badges, repos.Aggregates)

	refLoc := cfg.Location()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, refLoc, dbPool,
		aggregationService, analyticsService, repos.Attempts, repos.Pushes)

	aggregationWorker := worker.NewAggregationWorker(aggregationService, analyticsService, cfg.AggregateHour, refLoc)
	aggregationWorker.Start()

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:            srv,
		AggregationWorker: aggregationWorker,
		DBPool:            dbPool,
	})
}
