package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryKV простая in-memory реализация KVStorage для тестов
func memoryKV() *KVStorageMock {
	data := map[string][]byte{}
	return &KVStorageMock{
		GetFunc: func(ctx context.Context, key string) ([]byte, error) {
			v, ok := data[key]
			if !ok {
				return nil, ErrKeyNotFound
			}
			return v, nil
		},
		PutFunc: func(ctx context.Context, key string, value []byte) error {
			data[key] = value
			return nil
		},
	}
}

func TestAdapter_SetThenGet(t *testing.T) {
	ctx := context.Background()
	kv := memoryKV()
	adapter := NewAdapter(kv, testLogger())

	require.True(t, adapter.Set(ctx, "k", sample{Name: "a", Items: []string{"x", "y"}}))

	var got sample
	require.True(t, adapter.Get(ctx, "k", &got))
	assert.Equal(t, sample{Name: "a", Items: []string{"x", "y"}}, got)
	assert.Len(t, kv.PutCalls(), 1)
}

func TestAdapter_GetAbsent(t *testing.T) {
	adapter := NewAdapter(memoryKV(), testLogger())

	got := sample{Name: "fallback"}
	assert.False(t, adapter.Get(context.Background(), "missing", &got))
	assert.Equal(t, "fallback", got.Name)
}

func TestAdapter_GetReadFailure(t *testing.T) {
	kv := &KVStorageMock{
		GetFunc: func(ctx context.Context, key string) ([]byte, error) {
			return nil, errors.New("disk on fire")
		},
	}
	adapter := NewAdapter(kv, testLogger())

	var got sample
	assert.False(t, adapter.Get(context.Background(), "k", &got))
	assert.Equal(t, sample{}, got)
}

func TestAdapter_GetCorruptValueLeavesDestinationUntouched(t *testing.T) {
	kv := &KVStorageMock{
		GetFunc: func(ctx context.Context, key string) ([]byte, error) {
			// Частично валидный JSON: name успел бы декодироваться
			return []byte(`{"name":"broken","items":[1,2]}`), nil
		},
	}
	adapter := NewAdapter(kv, testLogger())

	got := sample{Name: "fallback"}
	assert.False(t, adapter.Get(context.Background(), "k", &got))
	assert.Equal(t, sample{Name: "fallback"}, got)
}

func TestAdapter_GetNonPointerDestination(t *testing.T) {
	kv := memoryKV()
	adapter := NewAdapter(kv, testLogger())

	var got sample
	assert.False(t, adapter.Get(context.Background(), "k", got))
	assert.Empty(t, kv.GetCalls(), "store must not be touched")
}

func TestAdapter_SetWriteFailure(t *testing.T) {
	kv := &KVStorageMock{
		PutFunc: func(ctx context.Context, key string, value []byte) error {
			return ErrQuotaExceeded
		},
	}
	adapter := NewAdapter(kv, testLogger())

	assert.False(t, adapter.Set(context.Background(), "k", sample{Name: "a"}))
	require.Len(t, kv.PutCalls(), 1)
	assert.JSONEq(t, `{"name":"a","items":null}`, string(kv.PutCalls()[0].Value))
}

func TestAdapter_SetUnencodableValue(t *testing.T) {
	kv := memoryKV()
	adapter := NewAdapter(kv, testLogger())

	assert.False(t, adapter.Set(context.Background(), "k", make(chan int)))
	assert.Empty(t, kv.PutCalls())
}
