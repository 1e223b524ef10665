// Package queue persists the ordered list of mutations that have not been confirmed by the gateway.
package queue

import (
	"context"
	"log/slog"
	"sync"

	"github.com/iudanet/sheetkeeper/internal/models"
)

const (
	// QueueKey ключ хранилища очереди отложенных операций
	QueueKey = "sheet-sync-queue"
	// DeadLetterKey ключ хранилища операций, исключенных из воспроизведения
	DeadLetterKey = "sheet-sync-dead"
)

//go:generate moq -out store_mock.go . Store

// Store is the JSON key-value store the queue persists to (storage.Adapter).
type Store interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, v any) bool
}

// Queue is an append-ordered list of pending operations.
// Every call re-reads storage, so the persisted list is the single source of truth.
// All mutations in this process are serialized by mu.
type Queue struct {
	store  Store
	logger *slog.Logger
	mu     sync.Mutex
}

// New creates a queue over store
func New(store Store, logger *slog.Logger) *Queue {
	return &Queue{store: store, logger: logger}
}

// Enqueue appends op to the end of the queue.
// Returns false when the queue could not be persisted.
func (q *Queue) Enqueue(ctx context.Context, op models.PendingOperation) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	ops := append(q.read(ctx, QueueKey), op)
	if !q.store.Set(ctx, QueueKey, ops) {
		q.logger.Error("Failed to persist pending operation", "op_id", op.ID, "type", op.Kind, "sheet_id", op.SheetID, "tab", op.Tab)
		return false
	}

	q.logger.Debug("Operation enqueued", "op_id", op.ID, "type", op.Kind, "depth", len(ops))
	return true
}

// ReadAll returns the queued operations in insertion order.
// An empty slice is returned when the queue was never populated.
func (q *Queue) ReadAll(ctx context.Context) []models.PendingOperation {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.read(ctx, QueueKey)
}

// Overwrite replaces the whole queue with ops
func (q *Queue) Overwrite(ctx context.Context, ops []models.PendingOperation) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.write(ctx, QueueKey, ops)
}

// Clear empties the queue
func (q *Queue) Clear(ctx context.Context) bool {
	return q.Overwrite(ctx, nil)
}

// Replace performs a read-modify-write of the queue under the queue lock.
// fn receives the current operations and returns the new list.
func (q *Queue) Replace(ctx context.Context, fn func(current []models.PendingOperation) []models.PendingOperation) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.write(ctx, QueueKey, fn(q.read(ctx, QueueKey)))
}

// DeadLetter appends ops to the dead-letter list
func (q *Queue) DeadLetter(ctx context.Context, ops []models.PendingOperation) bool {
	if len(ops) == 0 {
		return true
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	dead := append(q.read(ctx, DeadLetterKey), ops...)
	for _, op := range ops {
		q.logger.Warn("Operation moved to dead letters", "op_id", op.ID, "attempts", op.Attempts, "last_error", op.LastError)
	}
	return q.write(ctx, DeadLetterKey, dead)
}

// ReadDead returns the dead-letter list
func (q *Queue) ReadDead(ctx context.Context) []models.PendingOperation {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.read(ctx, DeadLetterKey)
}

// ClearDead empties the dead-letter list
func (q *Queue) ClearDead(ctx context.Context) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.write(ctx, DeadLetterKey, nil)
}

func (q *Queue) read(ctx context.Context, key string) []models.PendingOperation {
	var ops []models.PendingOperation
	if !q.store.Get(ctx, key, &ops) || ops == nil {
		return []models.PendingOperation{}
	}
	return ops
}

func (q *Queue) write(ctx context.Context, key string, ops []models.PendingOperation) bool {
	if ops == nil {
		ops = []models.PendingOperation{}
	}
	return q.store.Set(ctx, key, ops)
}
