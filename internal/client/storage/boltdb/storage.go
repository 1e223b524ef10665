package boltdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/sheetkeeper/internal/client/storage"
)

var (
	// BoltDB bucket names
	bucketKV        = []byte("kv")
	bucketAuth      = []byte("auth")
	bucketMetadata  = []byte("metadata")
	bucketHTTPCache = []byte("http_cache")
)

var (
	_ storage.KVStorage            = (*Storage)(nil)
	_ storage.AuthStorage          = (*Storage)(nil)
	_ storage.MetadataStorage      = (*Storage)(nil)
	_ storage.ResponseCacheStorage = (*Storage)(nil)
)

// DefaultQuotaBytes лимит суммарного размера значений в bucket kv
const DefaultQuotaBytes int64 = 5 * 1024 * 1024

// Options configures the storage
type Options struct {
	// QuotaBytes limits the total size of (compressed) values in the kv bucket; <= 0 disables the limit
	QuotaBytes int64
	// LockTimeout bounds the wait for the file lock held by another process
	LockTimeout time.Duration
}

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db    *bbolt.DB
	quota int64
	mu    sync.RWMutex
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string, opts Options) (*Storage, error) {
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = time.Second
	}

	// Открываем BoltDB; другой процесс с тем же файлом приведет к ошибке по таймауту
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: opts.LockTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db, quota: opts.QuotaBytes}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection. Repeated calls are no-ops.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// view runs fn in a read-only transaction
func (s *Storage) view(fn func(tx *bbolt.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.View(fn)
}

// update runs fn in a read-write transaction
func (s *Storage) update(fn func(tx *bbolt.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.Update(fn)
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketKV, bucketAuth, bucketMetadata, bucketHTTPCache} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}
