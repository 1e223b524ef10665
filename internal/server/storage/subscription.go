package storage

import (
	"context"

	"github.com/iudanet/sheetkeeper/internal/models"
)

//go:generate moq -out subscription_mock.go . SubscriptionStorage

// SubscriptionStorage defines interface for push subscription persistence.
// A subject has at most one subscription.
type SubscriptionStorage interface {
	// SaveSubscription stores the subscription of sub.Subject
	// If the subject already has one, it is replaced and CreatedAt is kept
	SaveSubscription(ctx context.Context, sub *models.PushSubscription) error

	// GetSubscription retrieves the subscription of subject
	// Returns ErrSubscriptionNotFound if subject has none
	GetSubscription(ctx context.Context, subject string) (*models.PushSubscription, error)

	// DeleteSubscription removes the subscription of subject
	// Returns ErrSubscriptionNotFound if subject has none
	DeleteSubscription(ctx context.Context, subject string) error
}
