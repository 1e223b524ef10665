package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"
	"go.etcd.io/bbolt"

	"github.com/iudanet/sheetkeeper/internal/client/storage"
)

// SaveResponse stores a captured gateway response under the request key
func (s *Storage) SaveResponse(ctx context.Context, key string, resp *storage.CachedResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal cached response: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketHTTPCache)
		if bucket == nil {
			return fmt.Errorf("http_cache bucket not found")
		}

		if err := bucket.Put([]byte(key), snappy.Encode(nil, data)); err != nil {
			return fmt.Errorf("failed to save cached response: %w", err)
		}
		return nil
	})
}

// GetResponse returns the cached response for the request key
func (s *Storage) GetResponse(ctx context.Context, key string) (*storage.CachedResponse, error) {
	var resp *storage.CachedResponse

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketHTTPCache)
		if bucket == nil {
			return fmt.Errorf("http_cache bucket not found")
		}

		encoded := bucket.Get([]byte(key))
		if encoded == nil {
			return storage.ErrResponseNotFound
		}

		data, err := snappy.Decode(nil, encoded)
		if err != nil {
			return fmt.Errorf("failed to decode cached response: %w", err)
		}

		resp = &storage.CachedResponse{}
		if err := json.Unmarshal(data, resp); err != nil {
			return fmt.Errorf("failed to unmarshal cached response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
