package boltdb

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/sheetkeeper/internal/client/storage"
)

func TestStorage_PutGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t, Options{})

	_, err := store.Get(ctx, "sheet-cache")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	require.NoError(t, store.Put(ctx, "sheet-cache", []byte(`{"S1:Sheet1":{}}`)))
	got, err := store.Get(ctx, "sheet-cache")
	require.NoError(t, err)
	assert.Equal(t, `{"S1:Sheet1":{}}`, string(got))

	// Перезапись заменяет значение целиком
	require.NoError(t, store.Put(ctx, "sheet-cache", []byte(`{}`)))
	got, err = store.Get(ctx, "sheet-cache")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))
}

func TestStorage_ValuesCompressedAtRest(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t, Options{})

	value := []byte(strings.Repeat(`{"formattedValue":"Alice"},`, 200))
	require.NoError(t, store.Put(ctx, "k", value))

	var raw []byte
	err := store.db.View(func(tx *bbolt.Tx) error {
		raw = append([]byte(nil), tx.Bucket(bucketKV).Get([]byte("k"))...)
		return nil
	})
	require.NoError(t, err)
	assert.Less(t, len(raw), len(value))

	decoded, err := snappy.Decode(nil, raw)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(value, decoded))
}

func TestStorage_GetCorruptValue(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t, Options{})

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketKV).Put([]byte("k"), []byte{0xff, 0xff, 0xff})
	})
	require.NoError(t, err)

	_, err = store.Get(ctx, "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode value")
}

func TestStorage_QuotaExceeded(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t, Options{QuotaBytes: 64})

	require.NoError(t, store.Put(ctx, "small", []byte("ok")))

	// Несжимаемые данные больше квоты
	big := make([]byte, 256)
	for i := range big {
		big[i] = byte(i * 7)
	}
	err := store.Put(ctx, "big", big)
	assert.ErrorIs(t, err, storage.ErrQuotaExceeded)

	// Отклоненная запись не меняет хранилище
	_, err = store.Get(ctx, "big")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	got, err := store.Get(ctx, "small")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(got))
}

func TestStorage_QuotaCountsReplacedValueOnce(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t, Options{QuotaBytes: 40})

	value := []byte("0123456789abcdef")
	// Повторная перезапись того же ключа не должна накапливать размер
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Put(ctx, "k", value))
	}
}

func TestStorage_KVBucketMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t, Options{})

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketKV)
	})
	require.NoError(t, err)

	_, err = store.Get(ctx, "k")
	assert.Contains(t, err.Error(), "kv bucket not found")
	err = store.Put(ctx, "k", []byte("v"))
	assert.Contains(t, err.Error(), "kv bucket not found")
}
