package boltdb

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/sheetkeeper/internal/client/storage"
)

func TestStorage_SaveGetResponse(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t, Options{})

	key := "GET http://gw/api/sheets/S1?tab=Sheet1"
	_, err := store.GetResponse(ctx, key)
	assert.ErrorIs(t, err, storage.ErrResponseNotFound)

	resp := &storage.CachedResponse{
		Status:   http.StatusOK,
		Header:   http.Header{"Content-Type": []string{"application/json"}},
		Body:     []byte(`{"success":true}`),
		StoredAt: 1700000000,
	}
	require.NoError(t, store.SaveResponse(ctx, key, resp))

	got, err := store.GetResponse(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, resp, got)
}

func TestStorage_ResponseCacheIgnoresQuota(t *testing.T) {
	ctx := context.Background()
	// Квота относится только к bucket kv
	store := newTestStorage(t, Options{QuotaBytes: 1})

	require.NoError(t, store.SaveResponse(ctx, "k", &storage.CachedResponse{Status: 200, Body: []byte("body")}))
}
