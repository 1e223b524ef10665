package boltdb

import (
	"bytes"
	"context"
	"fmt"

	"github.com/golang/snappy"
	"go.etcd.io/bbolt"

	"github.com/iudanet/sheetkeeper/internal/client/storage"
)

// Get returns the value stored under key
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}

		encoded := bucket.Get([]byte(key))
		if encoded == nil {
			return storage.ErrKeyNotFound
		}

		// Значение валидно только внутри транзакции, decode копирует его
		decoded, err := snappy.Decode(nil, encoded)
		if err != nil {
			return fmt.Errorf("failed to decode value %q: %w", key, err)
		}
		value = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Put stores value under key, replacing the previous one.
// Returns ErrQuotaExceeded if the bucket would grow beyond the configured quota.
func (s *Storage) Put(ctx context.Context, key string, value []byte) error {
	encoded := snappy.Encode(nil, value)

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}

		if s.quota > 0 {
			used := usedBytes(bucket, []byte(key))
			if used+int64(len(key)+len(encoded)) > s.quota {
				return fmt.Errorf("%w: %d of %d bytes used, value needs %d", storage.ErrQuotaExceeded, used, s.quota, len(encoded))
			}
		}

		if err := bucket.Put([]byte(key), encoded); err != nil {
			return fmt.Errorf("failed to save value %q: %w", key, err)
		}
		return nil
	})
}

// usedBytes суммирует размер ключей и значений bucket, кроме перезаписываемого ключа
func usedBytes(bucket *bbolt.Bucket, skip []byte) int64 {
	var used int64
	c := bucket.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		if bytes.Equal(k, skip) {
			continue
		}
		used += int64(len(k) + len(v))
	}
	return used
}
