package upsert

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    int64
	Key   string
	Value int
}

func rowKey(r *row) string { return r.Key }

func carryID(old, new *row) { new.ID = old.ID }

func TestArena_UpsertRoutesByExistence(t *testing.T) {
	existing := []row{
		{ID: 7, Key: "a", Value: 1},
	}
	arena := NewArena(existing, rowKey, 10)

	arena.Upsert(&row{Key: "a", Value: 2}, carryID)
	arena.Upsert(&row{Key: "b", Value: 3}, carryID)

	var created, updated []*row
	c, u, err := arena.Flush(context.Background(),
		func(_ context.Context, rows []*row) error {
			created = append(created, rows...)
			return nil
		},
		func(_ context.Context, rows []*row) error {
			updated = append(updated, rows...)
			return nil
		},
	)

	require.NoError(t, err)
	assert.Equal(t, 1, c)
	assert.Equal(t, 1, u)
	require.Len(t, created, 1)
	assert.Equal(t, "b", created[0].Key)
	require.Len(t, updated, 1)
	assert.Equal(t, int64(7), updated[0].ID, "update should carry the persisted ID")
	assert.Equal(t, 2, updated[0].Value)
}

func TestArena_RequeueSameKeyIsNoOp(t *testing.T) {
	arena := NewArena(nil, rowKey, 10)

	arena.Upsert(&row{Key: "a", Value: 1}, nil)
	arena.Upsert(&row{Key: "a", Value: 99}, nil)

	assert.Equal(t, 1, arena.Pending())
}

func TestArena_Has(t *testing.T) {
	arena := NewArena([]row{{Key: "persisted"}}, rowKey, 10)
	arena.QueueCreate(&row{Key: "queued"})

	assert.True(t, arena.Has("persisted"))
	assert.True(t, arena.Has("queued"))
	assert.False(t, arena.Has("missing"))
}

func TestArena_FlushChunksByBatchSize(t *testing.T) {
	arena := NewArena(nil, rowKey, 3)
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		arena.QueueCreate(&row{Key: k})
	}

	var batchSizes []int
	c, _, err := arena.Flush(context.Background(),
		func(_ context.Context, rows []*row) error {
			batchSizes = append(batchSizes, len(rows))
			return nil
		},
		func(_ context.Context, rows []*row) error { return nil },
	)

	require.NoError(t, err)
	assert.Equal(t, 7, c)
	assert.Equal(t, []int{3, 3, 1}, batchSizes)
}

func TestArena_FlushRetriesFailingBatch(t *testing.T) {
	arena := NewArena(nil, rowKey, 10)
	arena.QueueCreate(&row{Key: "a"})

	calls := 0
	c, _, err := arena.Flush(context.Background(),
		func(_ context.Context, rows []*row) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		},
		func(_ context.Context, rows []*row) error { return nil },
	)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, c)
}

func TestArena_FlushGivesUpAfterRetries(t *testing.T) {
	arena := NewArena(nil, rowKey, 10)
	arena.QueueCreate(&row{Key: "a"})

	calls := 0
	_, _, err := arena.Flush(context.Background(),
		func(_ context.Context, rows []*row) error {
			calls++
			return errors.New("down")
		},
		func(_ context.Context, rows []*row) error { return nil },
	)

	require.Error(t, err)
	assert.Equal(t, flushAttempts, calls)
	assert.Contains(t, err.Error(), "failed to flush creates")
}

func TestArena_EmptyFlush(t *testing.T) {
	arena := NewArena(nil, rowKey, 10)

	c, u, err := arena.Flush(context.Background(),
		func(_ context.Context, rows []*row) error {
			t.Fatal("create should not be called")
			return nil
		},
		func(_ context.Context, rows []*row) error {
			t.Fatal("update should not be called")
			return nil
		},
	)

	require.NoError(t, err)
	assert.Zero(t, c)
	assert.Zero(t, u)
}
