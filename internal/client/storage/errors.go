package storage

import "errors"

// Common client storage errors
var (
	// ErrKeyNotFound indicates that no value is stored under the key
	ErrKeyNotFound = errors.New("key not found")

	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrResponseNotFound indicates that no cached HTTP response exists for the request
	ErrResponseNotFound = errors.New("cached response not found")

	// ErrQuotaExceeded indicates that the write would exceed the storage quota
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
