package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/sheetkeeper/internal/client/storage"
)

func TestReplayRecord_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t, Options{})

	// Пока проходов не было, записи нет
	rec, err := store.GetReplayRecord(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec)

	finished := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveReplayRecord(ctx, storage.ReplayRecord{
		FinishedAt: finished,
		Attempted:  3,
		Settled:    2,
		Remaining:  1,
	}))

	rec, err = store.GetReplayRecord(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, finished.Equal(rec.FinishedAt))
	assert.True(t, finished.Equal(rec.LastSettledAt))
	assert.Equal(t, 3, rec.Attempted)
	assert.Equal(t, 2, rec.Settled)
	assert.Equal(t, 1, rec.Remaining)
	assert.Empty(t, rec.Error)
}

func TestReplayRecord_FailedPassKeepsLastSettled(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t, Options{})

	settledAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveReplayRecord(ctx, storage.ReplayRecord{
		FinishedAt: settledAt,
		Attempted:  1,
		Settled:    1,
	}))

	failedAt := settledAt.Add(time.Hour)
	require.NoError(t, store.SaveReplayRecord(ctx, storage.ReplayRecord{
		FinishedAt: failedAt,
		Attempted:  1,
		Remaining:  1,
		Error:      "replay stopped: gateway unreachable",
	}))

	rec, err := store.GetReplayRecord(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, failedAt.Equal(rec.FinishedAt))
	assert.True(t, settledAt.Equal(rec.LastSettledAt))
	assert.Zero(t, rec.Settled)
	assert.Equal(t, "replay stopped: gateway unreachable", rec.Error)
}

func TestReplayRecord_FirstPassSettlesNothing(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t, Options{})

	require.NoError(t, store.SaveReplayRecord(ctx, storage.ReplayRecord{
		FinishedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Attempted:  1,
		Remaining:  1,
	}))

	rec, err := store.GetReplayRecord(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.LastSettledAt.IsZero())
}

func TestReplayRecord_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t, Options{})

	// Удаляем bucket metadata напрямую
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketMetadata)
	})
	require.NoError(t, err)

	_, err = store.GetReplayRecord(ctx)
	assert.Contains(t, err.Error(), "metadata bucket not found")

	err = store.SaveReplayRecord(ctx, storage.ReplayRecord{})
	assert.Contains(t, err.Error(), "metadata bucket not found")
}

func TestReplayRecord_Corrupted(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t, Options{})

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMetadata).Put(keyLastReplay, []byte("{broken"))
	})
	require.NoError(t, err)

	_, err = store.GetReplayRecord(ctx)
	assert.Contains(t, err.Error(), "failed to unmarshal replay record")
}
