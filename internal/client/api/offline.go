package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/sheetkeeper/internal/client/storage"
)

// cachedPathPrefix запросы с этим префиксом кешируются для офлайн-режима
const cachedPathPrefix = "/api/sheets/"

// OfflineTransport is a network-first RoundTripper for sheet reads.
// Successful GET responses are stored; when the network fails the stored
// response is replayed with OfflineCacheHeader set.
type OfflineTransport struct {
	base   http.RoundTripper
	cache  storage.ResponseCacheStorage
	logger *slog.Logger
	now    func() time.Time
}

// NewOfflineTransport оборачивает base; nil означает http.DefaultTransport
func NewOfflineTransport(base http.RoundTripper, cache storage.ResponseCacheStorage, logger *slog.Logger) *OfflineTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &OfflineTransport{base: base, cache: cache, logger: logger, now: time.Now}
}

// RoundTrip implements http.RoundTripper
func (t *OfflineTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet || !strings.HasPrefix(req.URL.Path, cachedPathPrefix) {
		return t.base.RoundTrip(req)
	}

	key := responseKey(req)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		// Запрос отменен вызывающим кодом: кеш не подставляем; таймаут считается офлайном
		if errors.Is(req.Context().Err(), context.Canceled) {
			return nil, err
		}
		cached, cacheErr := t.cache.GetResponse(req.Context(), key)
		if cacheErr != nil {
			if !errors.Is(cacheErr, storage.ErrResponseNotFound) {
				t.logger.Warn("Failed to read offline response cache", "key", key, "error", cacheErr)
			}
			return nil, err
		}
		t.logger.Info("Serving response from offline cache", "key", key, "stored_at", cached.StoredAt)
		return cachedResponse(req, cached), nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	entry := &storage.CachedResponse{
		Status:   resp.StatusCode,
		Header:   resp.Header.Clone(),
		Body:     body,
		StoredAt: t.now().Unix(),
	}
	// Запись в кеш не должна влиять на успешный ответ
	if err := t.cache.SaveResponse(context.WithoutCancel(req.Context()), key, entry); err != nil {
		t.logger.Warn("Failed to store response in offline cache", "key", key, "error", err)
	}

	return resp, nil
}

// responseKey ключ кеша: метод и полный URL без учета заголовков
func responseKey(req *http.Request) string {
	return req.Method + " " + req.URL.String()
}

func cachedResponse(req *http.Request, cached *storage.CachedResponse) *http.Response {
	header := cached.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	header.Set(OfflineCacheHeader, "hit")

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", cached.Status, http.StatusText(cached.Status)),
		StatusCode:    cached.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(cached.Body)),
		ContentLength: int64(len(cached.Body)),
		Request:       req,
	}
}
