package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/sheetkeeper/internal/models"
	"github.com/iudanet/sheetkeeper/internal/server/storage"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s
}

func newTestSubscription(subject, endpoint string, at time.Time) *models.PushSubscription {
	return &models.PushSubscription{
		Subject:   subject,
		Endpoint:  endpoint,
		P256dh:    "p256dh-" + subject,
		Auth:      "auth-" + subject,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestSubscriptionStorage_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveSubscription(ctx, newTestSubscription("alice@example.com", "https://push.example.com/a", at)))

	got, err := s.GetSubscription(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://push.example.com/a", got.Endpoint)
	assert.Equal(t, "p256dh-alice@example.com", got.P256dh)
	assert.True(t, at.Equal(got.CreatedAt))
}

func TestSubscriptionStorage_ReplaceKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	require.NoError(t, s.SaveSubscription(ctx, newTestSubscription("alice@example.com", "https://push.example.com/a", first)))
	require.NoError(t, s.SaveSubscription(ctx, newTestSubscription("alice@example.com", "https://push.example.com/b", second)))

	got, err := s.GetSubscription(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://push.example.com/b", got.Endpoint)
	assert.True(t, first.Equal(got.CreatedAt))
	assert.True(t, second.Equal(got.UpdatedAt))
}

func TestSubscriptionStorage_SubjectsIsolated(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	at := time.Now().UTC()

	require.NoError(t, s.SaveSubscription(ctx, newTestSubscription("alice@example.com", "https://push.example.com/a", at)))
	require.NoError(t, s.SaveSubscription(ctx, newTestSubscription("bob@example.com", "https://push.example.com/b", at)))

	require.NoError(t, s.DeleteSubscription(ctx, "alice@example.com"))

	_, err := s.GetSubscription(ctx, "alice@example.com")
	assert.ErrorIs(t, err, storage.ErrSubscriptionNotFound)

	got, err := s.GetSubscription(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://push.example.com/b", got.Endpoint)
}

func TestSubscriptionStorage_NotFound(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	_, err := s.GetSubscription(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrSubscriptionNotFound)

	err = s.DeleteSubscription(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrSubscriptionNotFound)
}

func TestNew_RunsMigrations(t *testing.T) {
	s := setupTestStorage(t)

	var name string
	err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'push_subscriptions'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "push_subscriptions", name)
}
