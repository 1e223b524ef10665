package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/sheetkeeper/internal/client/storage"
)

var keyLastReplay = []byte("last_replay")

// SaveReplayRecord stores the outcome of a replay pass
func (s *Storage) SaveReplayRecord(ctx context.Context, rec storage.ReplayRecord) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Время последней доставки переносится из предыдущей записи в той же транзакции
		if rec.Settled > 0 {
			rec.LastSettledAt = rec.FinishedAt
		} else if prev, err := decodeReplayRecord(bucket.Get(keyLastReplay)); err != nil {
			return err
		} else if prev != nil {
			rec.LastSettledAt = prev.LastSettledAt
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal replay record: %w", err)
		}
		if err := bucket.Put(keyLastReplay, data); err != nil {
			return fmt.Errorf("failed to save replay record: %w", err)
		}
		return nil
	})
}

// GetReplayRecord returns the last stored replay outcome, nil if none
func (s *Storage) GetReplayRecord(ctx context.Context) (*storage.ReplayRecord, error) {
	var rec *storage.ReplayRecord

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		var err error
		rec, err = decodeReplayRecord(bucket.Get(keyLastReplay))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get replay record: %w", err)
	}

	return rec, nil
}

func decodeReplayRecord(data []byte) (*storage.ReplayRecord, error) {
	if data == nil {
		return nil, nil
	}
	var rec storage.ReplayRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal replay record: %w", err)
	}
	return &rec, nil
}
