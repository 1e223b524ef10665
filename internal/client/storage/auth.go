package storage

import (
	"context"
)

// AuthStorage defines interface for storing the session credential on client
type AuthStorage interface {
	// SaveAuth stores authentication data, replacing the previous one
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout)
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated checks if valid authentication exists (not expired)
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData represents the gateway session in storage.
// ExpiresAt is a unix timestamp; 0 means the expiry is unknown (opaque token).
type AuthData struct {
	SessionToken string `json:"session_token"`
	Subject      string `json:"subject,omitempty"`
	SavedAt      int64  `json:"saved_at"`
	ExpiresAt    int64  `json:"expires_at"`
}
