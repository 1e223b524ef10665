package storage

import "errors"

// Common storage errors
var (
	// ErrSubscriptionNotFound indicates that no push subscription exists for the subject
	ErrSubscriptionNotFound = errors.New("push subscription not found")
)
