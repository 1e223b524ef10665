package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/sheetkeeper/internal/models"
	"github.com/iudanet/sheetkeeper/internal/server/storage"
	"github.com/iudanet/sheetkeeper/pkg/api"
)

// PushHandler обрабатывает регистрацию Web Push подписок.
// Подписка хранится одна на субъект сессии, повторная регистрация ее заменяет.
type PushHandler struct {
	logger  *slog.Logger
	storage storage.SubscriptionStorage
	schemas *Schemas
	now     func() time.Time
}

// NewPushHandler создает новый handler для push подписок
func NewPushHandler(logger *slog.Logger, store storage.SubscriptionStorage, schemas *Schemas) *PushHandler {
	return &PushHandler{
		logger:  logger,
		storage: store,
		schemas: schemas,
		now:     time.Now,
	}
}

// Subscribe обрабатывает POST /api/push/subscription
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := GetSession(ctx)
	if !ok {
		sendError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "")
		return
	}

	var req api.PushSubscription
	if err := decodeValid(r, h.schemas.push, &req); err != nil {
		sendError(w, h.logger, http.StatusBadRequest, api.CodeInvalidPayload, err.Error())
		return
	}

	now := h.now().UTC()
	sub := &models.PushSubscription{
		CreatedAt: now,
		UpdatedAt: now,
		Subject:   claims.Subject,
		Endpoint:  req.Endpoint,
		P256dh:    req.Keys.P256dh,
		Auth:      req.Keys.Auth,
	}
	if err := h.storage.SaveSubscription(ctx, sub); err != nil {
		h.logger.ErrorContext(ctx, "Failed to save push subscription", "subject", claims.Subject, "error", err)
		sendError(w, h.logger, http.StatusInternalServerError, api.CodeUnknownError, "")
		return
	}

	h.logger.InfoContext(ctx, "Push subscription saved", "subject", claims.Subject)
	sendJSON(w, h.logger, api.SuccessResponse{Success: true}, http.StatusOK)
}

// Unsubscribe обрабатывает DELETE /api/push/subscription.
// Отсутствие подписки не считается ошибкой.
func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := GetSession(ctx)
	if !ok {
		sendError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "")
		return
	}

	err := h.storage.DeleteSubscription(ctx, claims.Subject)
	if err != nil && !errors.Is(err, storage.ErrSubscriptionNotFound) {
		h.logger.ErrorContext(ctx, "Failed to delete push subscription", "subject", claims.Subject, "error", err)
		sendError(w, h.logger, http.StatusInternalServerError, api.CodeUnknownError, "")
		return
	}

	h.logger.InfoContext(ctx, "Push subscription removed", "subject", claims.Subject)
	sendJSON(w, h.logger, api.SuccessResponse{Success: true}, http.StatusOK)
}
