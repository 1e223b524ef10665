package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/sheetkeeper/internal/models"
	"github.com/iudanet/sheetkeeper/internal/server/storage"
)

var _ storage.SubscriptionStorage = (*Storage)(nil)

// SaveSubscription stores or replaces the push subscription of sub.Subject
func (s *Storage) SaveSubscription(ctx context.Context, sub *models.PushSubscription) error {
	// created_at сохраняется при перерегистрации
	query := `
		INSERT INTO push_subscriptions (subject, endpoint, p256dh, auth, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(subject) DO UPDATE SET
			endpoint = excluded.endpoint,
			p256dh = excluded.p256dh,
			auth = excluded.auth,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		sub.Subject,
		sub.Endpoint,
		sub.P256dh,
		sub.Auth,
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save push subscription: %w", err)
	}

	return nil
}

// GetSubscription retrieves the push subscription of subject
func (s *Storage) GetSubscription(ctx context.Context, subject string) (*models.PushSubscription, error) {
	query := `
		SELECT subject, endpoint, p256dh, auth, created_at, updated_at
		FROM push_subscriptions
		WHERE subject = ?
	`

	sub := &models.PushSubscription{}
	err := s.db.QueryRowContext(ctx, query, subject).Scan(
		&sub.Subject,
		&sub.Endpoint,
		&sub.P256dh,
		&sub.Auth,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get push subscription: %w", err)
	}

	return sub, nil
}

// DeleteSubscription removes the push subscription of subject
func (s *Storage) DeleteSubscription(ctx context.Context, subject string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE subject = ?`, subject)
	if err != nil {
		return fmt.Errorf("failed to delete push subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrSubscriptionNotFound
	}

	return nil
}
