package storage

import (
	"context"
	"net/http"
)

// ResponseCacheStorage stores the last successful gateway responses for offline fallback.
type ResponseCacheStorage interface {
	// SaveResponse stores the response under the request key
	SaveResponse(ctx context.Context, key string, resp *CachedResponse) error

	// GetResponse returns the stored response or ErrResponseNotFound
	GetResponse(ctx context.Context, key string) (*CachedResponse, error)
}

// CachedResponse is a captured HTTP response
type CachedResponse struct {
	Header   http.Header `json:"header"`
	Body     []byte      `json:"body"`
	Status   int         `json:"status"`
	StoredAt int64       `json:"stored_at"`
}
