package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/sheetkeeper/pkg/api"
)

func TestNewRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(10, time.Minute, setupTestLogger())
	defer limiter.Stop()

	assert.Equal(t, 10, limiter.rate)
	assert.Equal(t, time.Minute, limiter.window)
	assert.NotNil(t, limiter.buckets)
	assert.NotNil(t, limiter.cleanupC)
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute, setupTestLogger())
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, wait := limiter.Allow("10.0.0.1")
		assert.True(t, allowed, "request %d should be allowed", i+1)
		assert.Zero(t, wait)
	}

	allowed, wait := limiter.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
	assert.LessOrEqual(t, wait, time.Minute)

	// Другой IP имеет собственный бакет
	allowed, _ = limiter.Allow("10.0.0.2")
	assert.True(t, allowed)
}

func TestRateLimiter_Refill(t *testing.T) {
	limiter := NewRateLimiter(1, 50*time.Millisecond, setupTestLogger())
	defer limiter.Stop()

	allowed, _ := limiter.Allow("10.0.0.1")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.1")
	require.False(t, allowed)

	time.Sleep(60 * time.Millisecond)

	allowed, _ = limiter.Allow("10.0.0.1")
	assert.True(t, allowed)
}

func TestRateLimiter_Concurrent(t *testing.T) {
	limiter := NewRateLimiter(50, time.Minute, setupTestLogger())
	defer limiter.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("10.0.0.1"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestRateLimiter_CleanupOldBuckets(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute, setupTestLogger())
	defer limiter.Stop()

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.2")
	require.Len(t, limiter.buckets, 2)

	limiter.cleanupOldBuckets(time.Now().Add(time.Minute))
	assert.Len(t, limiter.buckets, 2, "buckets younger than two windows stay")

	limiter.cleanupOldBuckets(time.Now().Add(3 * time.Minute))
	assert.Empty(t, limiter.buckets)
}

func TestRateLimiter_StopTwice(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute, setupTestLogger())
	limiter.Stop()
	assert.NotPanics(t, limiter.Stop)
}

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute, setupTestLogger())
	defer limiter.Stop()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := limiter.Middleware(next)

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/sheets", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	// Порт не влияет на ключ лимита
	assert.Equal(t, http.StatusOK, send("192.168.1.1:1000").Code)
	assert.Equal(t, http.StatusOK, send("192.168.1.1:1001").Code)

	w := send("192.168.1.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retryAfter, 1)
	assert.LessOrEqual(t, retryAfter, 60)
	assert.Equal(t, api.CodeRateLimited, decodeError(t, w).Error)

	assert.Equal(t, http.StatusOK, send("192.168.1.2:1000").Code)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{"remote addr with port", "192.168.1.1:12345", nil, "192.168.1.1"},
		{"ipv6 remote addr", "[::1]:8080", nil, "::1"},
		{"remote addr without port", "192.168.1.1", nil, "192.168.1.1"},
		{"x-forwarded-for single", "10.0.0.1:1", map[string]string{"X-Forwarded-For": "203.0.113.5"}, "203.0.113.5"},
		{"x-forwarded-for chain", "10.0.0.1:1", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"}, "203.0.113.5"},
		{"x-real-ip", "10.0.0.1:1", map[string]string{"X-Real-IP": "198.51.100.7"}, "198.51.100.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, getClientIP(req))
		})
	}
}
