// Package upsert provides a batched create-or-update buffer. Pipeline
// stages load the existing rows for a day into an Arena, queue their
// writes against it, and flush once at the end of the stage. The arena
// decides create vs update by natural key so re-running a day updates
// rows in place instead of duplicating them.
package upsert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/questday/qotd-backend/internal/logger"
)

const (
	// DefaultBatchSize bounds rows per write call against the store
	DefaultBatchSize = 10

	// flushAttempts is how many times a failing batch write is retried
	// before the flush gives up
	flushAttempts = 3
)

// WriteFunc persists a chunk of rows
type WriteFunc[T any] func(ctx context.Context, rows []*T) error

// KeyFunc derives the natural key an Arena deduplicates on
type KeyFunc[T any] func(row *T) string

// Arena buffers writes for one table. Not safe for concurrent use;
// each pipeline stage owns its arenas for the duration of a run.
type Arena[T any] struct {
	keyFn     KeyFunc[T]
	batchSize int

	existing map[string]*T
	creates  []*T
	updates  []*T
	queued   map[string]struct{}
}

// NewArena builds an arena seeded with the rows already persisted for
// the day. Queued rows whose key matches an existing row become updates.
func NewArena[T any](existing []T, keyFn KeyFunc[T], batchSize int) *Arena[T] {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	byKey := make(map[string]*T, len(existing))
	for i := range existing {
		row := &existing[i]
		byKey[keyFn(row)] = row
	}

	return &Arena[T]{
		keyFn:     keyFn,
		batchSize: batchSize,
		existing:  byKey,
		queued:    make(map[string]struct{}),
	}
}

// Lookup returns the persisted row for a key, or nil
func (a *Arena[T]) Lookup(key string) *T {
	return a.existing[key]
}

// Has reports whether a key exists, persisted or already queued
func (a *Arena[T]) Has(key string) bool {
	if _, ok := a.queued[key]; ok {
		return true
	}
	_, ok := a.existing[key]
	return ok
}

// Upsert queues a row, routing it to the create or update list based on
// whether its key is already persisted. When the key exists the new row
// inherits the persisted row's identity via carry, which copies
// identifying fields (typically the ID) from old to new. A nil carry
// skips that step. Re-queuing a key within the same arena is a no-op.
func (a *Arena[T]) Upsert(row *T, carry func(old, new *T)) {
	key := a.keyFn(row)
	if _, ok := a.queued[key]; ok {
		return
	}
	a.queued[key] = struct{}{}

	if old, ok := a.existing[key]; ok {
		if carry != nil {
			carry(old, row)
		}
		a.updates = append(a.updates, row)
		return
	}
	a.creates = append(a.creates, row)
}

// QueueCreate queues a row for insertion without an existence check
func (a *Arena[T]) QueueCreate(row *T) {
	a.queued[a.keyFn(row)] = struct{}{}
	a.creates = append(a.creates, row)
}

// QueueUpdate queues a row for update without an existence check
func (a *Arena[T]) QueueUpdate(row *T) {
	a.queued[a.keyFn(row)] = struct{}{}
	a.updates = append(a.updates, row)
}

// Pending returns the number of queued rows not yet flushed
func (a *Arena[T]) Pending() int {
	return len(a.creates) + len(a.updates)
}

// Flush writes queued creates then updates in batches. Each batch is
// retried up to flushAttempts times; a batch that still fails aborts
// the flush. Returns the counts of rows created and updated.
func (a *Arena[T]) Flush(ctx context.Context, create, update WriteFunc[T]) (created, updated int, err error) {
	created, err = a.write(ctx, a.creates, create)
	if err != nil {
		return created, 0, fmt.Errorf("failed to flush creates: %w", err)
	}
	a.creates = nil

	updated, err = a.write(ctx, a.updates, update)
	if err != nil {
		return created, updated, fmt.Errorf("failed to flush updates: %w", err)
	}
	a.updates = nil

	return created, updated, nil
}

func (a *Arena[T]) write(ctx context.Context, rows []*T, fn WriteFunc[T]) (int, error) {
	log := logger.FromContext(ctx)

	written := 0
	for start := 0; start < len(rows); start += a.batchSize {
		end := start + a.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		var lastErr error
		for attempt := 1; attempt <= flushAttempts; attempt++ {
			if lastErr = fn(ctx, chunk); lastErr == nil {
				break
			}
			log.Warn("batch write failed, retrying",
				slog.Int("attempt", attempt),
				slog.Int("batch_size", len(chunk)),
				slog.String("error", lastErr.Error()))
		}
		if lastErr != nil {
			return written, lastErr
		}
		written += len(chunk)
	}
	return written, nil
}
