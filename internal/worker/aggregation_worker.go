package worker

import (
	"context"
	"sync"
	"time"

	"github.com/questday/qotd-backend/internal/aggregation"
	"github.com/questday/qotd-backend/internal/analytics"
	"github.com/questday/qotd-backend/internal/datekey"
	"github.com/questday/qotd-backend/internal/logger"
)

const (
	// maxRunAttempts bounds how often a failed run is retried before
	// giving up until the next day (or a manual HTTP trigger).
	maxRunAttempts = 3
	retryDelay     = 10 * time.Minute
)

// AggregationWorker runs the daily aggregation shortly after the game
// day closes, at the configured hour in the reference timezone. The
// HTTP trigger stays available for manual re-runs; both paths hit the
// same idempotent pipeline.
type AggregationWorker struct {
	aggregationService aggregation.Service
	analyticsService   analytics.Service
	hour               int
	location           *time.Location
	timer              *time.Timer
	retryTimer         *time.Timer
	shutdown           chan struct{}
	wg                 sync.WaitGroup
	mu                 sync.Mutex
}

// NewAggregationWorker creates a new AggregationWorker
func NewAggregationWorker(aggregationService aggregation.Service, analyticsService analytics.Service, hour int, location *time.Location) *AggregationWorker {
	return &AggregationWorker{
		aggregationService: aggregationService,
		analyticsService:   analyticsService,
		hour:               hour,
		location:           location,
		shutdown:           make(chan struct{}),
	}
}

// Start initializes the worker and schedules the first run
func (w *AggregationWorker) Start() {
	w.scheduleNext()
}

// scheduleNext calculates the time until the next run and arms the timer
func (w *AggregationWorker) scheduleNext() {
	duration := w.timeUntilNextRun()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling to prevent "tight loop" rescheduling caused by early triggers
	if duration > 1*time.Hour {
		// Stage 1: Long-range (Standby). Wake up 45 minutes before the run.
		waitDuration := duration - 45*time.Minute
		w.timer = time.AfterFunc(waitDuration, func() {
			w.scheduleNext()
		})
		w.mu.Unlock()

		log.Info(LogMsgAggregationStandby, "next_check_at", time.Now().UTC().Add(waitDuration))
		return
	}

	// Stage 2: Final approach. Schedule the actual run.
	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// Jitter protection: if the timer triggered early (jitter > 10s),
		// simply reschedule for the remaining time.
		rem := w.timeUntilNextRun()
		if rem > 10*time.Second && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.executeRun()
		w.scheduleNext() // Back to Stage 1 with ~24h to go
	})
	w.mu.Unlock()

	log.Info(LogMsgAggregationApproach, "next_run_at", time.Now().UTC().Add(duration))
}

// executeRun performs the aggregation in a tracked goroutine
func (w *AggregationWorker) executeRun() {
	w.runAttempt(datekey.Yesterday(w.location), 1)
}

// runAttempt runs the pipeline for dateKey and, on failure, arms a
// retry timer for the same day until maxRunAttempts is exhausted.
func (w *AggregationWorker) runAttempt(dateKey string, attempt int) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		log := logger.FromContext(ctx)

		log.Info(LogMsgAggregationStarting, "date_key", dateKey, "attempt", attempt)

		summary, err := w.aggregationService.Run(ctx, dateKey)
		if err != nil {
			log.Error(LogMsgAggregationFailed, "error", err, "date_key", dateKey, "attempt", attempt)
			if attempt < maxRunAttempts {
				w.scheduleRetry(dateKey, attempt+1)
				log.Info(LogMsgAggregationRetry, "date_key", dateKey, "attempt", attempt+1, "delay", retryDelay)
			}
			return
		}

		w.analyticsService.InvalidateDay(dateKey)

		log.Info(LogMsgAggregationCompleted,
			"date_key", dateKey,
			"events", summary.Events,
			"players", summary.Players,
			"duration_ms", summary.DurationMS)
	}()
}

// scheduleRetry arms the retry timer unless the worker is shutting down
func (w *AggregationWorker) scheduleRetry(dateKey string, attempt int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdown:
		return
	default:
	}

	if w.retryTimer != nil {
		w.retryTimer.Stop()
	}
	w.retryTimer = time.AfterFunc(retryDelay, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}
		w.runAttempt(dateKey, attempt)
	})
}

// Shutdown cancels the pending timer and waits for an in-flight run
func (w *AggregationWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down aggregation worker")

	select {
	case <-w.shutdown:
		// Already closed, nothing to do
	default:
		close(w.shutdown)
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	if w.retryTimer != nil {
		w.retryTimer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Aggregation worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Aggregation worker shutdown timeout, a run may still be in flight")
		return ctx.Err()
	}
}

// timeUntilNextRun calculates the duration until the configured hour in
// the reference timezone
func (w *AggregationWorker) timeUntilNextRun() time.Duration {
	now := time.Now().In(w.location)
	next := time.Date(
		now.Year(), now.Month(), now.Day(),
		w.hour, 0, 0, 0, w.location,
	)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
