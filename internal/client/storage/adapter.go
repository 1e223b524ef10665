package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"reflect"
)

// Adapter wraps a KVStorage with JSON (de)serialization.
// Failures never reach the caller: they are logged and reported as a false result,
// so a broken or full store degrades to "no data" instead of breaking reads and writes.
type Adapter struct {
	kv     KVStorage
	logger *slog.Logger
}

// NewAdapter creates a new adapter over kv
func NewAdapter(kv KVStorage, logger *slog.Logger) *Adapter {
	return &Adapter{kv: kv, logger: logger}
}

// Get decodes the value stored under key into dst (a non-nil pointer).
// Returns false when the key is absent or the value cannot be read or decoded;
// dst is left untouched in that case.
func (a *Adapter) Get(ctx context.Context, key string, dst any) bool {
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		a.logger.Error("Storage read with non-pointer destination", "key", key)
		return false
	}

	data, err := a.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false
		}
		a.logger.Warn("Failed to read from storage", "key", key, "error", err)
		return false
	}

	// Декодируем во временное значение, чтобы не испортить dst при ошибке
	tmp := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(data, tmp.Interface()); err != nil {
		a.logger.Warn("Failed to decode stored value", "key", key, "error", err)
		return false
	}

	target.Elem().Set(tmp.Elem())
	return true
}

// Set encodes v and stores it under key, replacing any previous value.
// Returns false when the value cannot be encoded or written.
func (a *Adapter) Set(ctx context.Context, key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("Failed to encode value for storage", "key", key, "error", err)
		return false
	}

	if err := a.kv.Put(ctx, key, data); err != nil {
		a.logger.Warn("Failed to write to storage", "key", key, "size", len(data), "error", err)
		return false
	}

	return true
}
