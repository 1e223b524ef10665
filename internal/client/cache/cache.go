// Package cache keeps the last known snapshot of every (sheet, tab) pair the client has seen.
package cache

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/iudanet/sheetkeeper/internal/models"
)

// TableKey ключ хранилища, под которым лежит вся таблица снапшотов
const TableKey = "sheet-cache"

//go:generate moq -out store_mock.go . Store

// Store is the JSON key-value store the cache persists to (storage.Adapter).
type Store interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, v any) bool
}

// Cache persists snapshots as a single map keyed by models.CacheKey.
// Entries are never evicted.
type Cache struct {
	store  Store
	logger *slog.Logger
	mu     sync.Mutex
}

// New creates a snapshot cache over store
func New(store Store, logger *slog.Logger) *Cache {
	return &Cache{store: store, logger: logger}
}

// Save upserts the snapshot under its composite key.
// Storage failures are logged and swallowed.
func (c *Cache) Save(ctx context.Context, snapshot *models.SheetSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table := c.loadTable(ctx)
	table[snapshot.Key()] = *snapshot

	if !c.store.Set(ctx, TableKey, table) {
		c.logger.Warn("Snapshot was not persisted", "key", snapshot.Key())
		return
	}
	c.logger.Debug("Snapshot saved", "key", snapshot.Key(), "rows", snapshot.SheetStats.RowCount)
}

// Load returns the cached snapshot for (sheetID, tab).
// The second result is false when nothing is cached or the table cannot be read.
func (c *Cache) Load(ctx context.Context, sheetID, tab string) (*models.SheetSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot, ok := c.loadTable(ctx)[models.CacheKey(sheetID, tab)]
	if !ok {
		return nil, false
	}
	return &snapshot, true
}

// Keys returns the cached composite keys in sorted order
func (c *Cache) Keys(ctx context.Context) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	table := c.loadTable(ctx)
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// loadTable читает таблицу снапшотов; отсутствие или ошибка дают пустую таблицу
func (c *Cache) loadTable(ctx context.Context) map[string]models.SheetSnapshot {
	var table map[string]models.SheetSnapshot
	if !c.store.Get(ctx, TableKey, &table) || table == nil {
		return map[string]models.SheetSnapshot{}
	}
	return table
}
