package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/sheetkeeper/internal/client/api"
	"github.com/iudanet/sheetkeeper/internal/client/storage"
)

// Источники сессионного токена
const (
	SourceNone   = "none"
	SourceEnv    = "env"
	SourceStored = "stored"
)

// Status описывает текущую сессию
type Status struct {
	ExpiresAt     time.Time // нулевое значение - срок неизвестен
	Source        string
	Subject       string
	Authenticated bool
}

// Session хранит сессионный токен шлюза и проверяет его срок действия.
// Реализует api.TokenSource.
type Session struct {
	storage  storage.AuthStorage
	logger   *slog.Logger
	now      func() time.Time
	envToken string
}

var _ api.TokenSource = (*Session)(nil)

// NewSession создает хранилище сессии.
// envToken (если не пустой) имеет приоритет над сохраненным токеном.
func NewSession(authStorage storage.AuthStorage, envToken string, logger *slog.Logger) *Session {
	return &Session{
		storage:  authStorage,
		logger:   logger,
		now:      time.Now,
		envToken: strings.TrimSpace(envToken),
	}
}

// Save сохраняет токен. Для JWT срок действия и subject извлекаются без проверки подписи:
// подпись проверяет шлюз, клиенту нужен только exp, чтобы не ходить в сеть с просроченной сессией.
func (s *Session) Save(ctx context.Context, token string) (*storage.AuthData, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("session token cannot be empty")
	}

	data := &storage.AuthData{
		SessionToken: token,
		SavedAt:      s.now().Unix(),
	}

	subject, expiresAt := inspectToken(token)
	data.Subject = subject
	if !expiresAt.IsZero() {
		if !expiresAt.After(s.now()) {
			return nil, fmt.Errorf("session token already expired at %s", expiresAt.Format(time.RFC3339))
		}
		data.ExpiresAt = expiresAt.Unix()
	}

	if err := s.storage.SaveAuth(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("Session saved", "subject", data.Subject, "expires_at", data.ExpiresAt)
	return data, nil
}

// Token returns the bearer credential or api.ErrUnauthorized when none is valid
func (s *Session) Token(ctx context.Context) (string, error) {
	if s.envToken != "" {
		if _, exp := inspectToken(s.envToken); !exp.IsZero() && !exp.After(s.now()) {
			return "", fmt.Errorf("%w: token from environment expired", api.ErrUnauthorized)
		}
		return s.envToken, nil
	}

	data, err := s.storage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return "", api.ErrUnauthorized
		}
		return "", fmt.Errorf("%w: %w", api.ErrUnauthorized, err)
	}

	if data.ExpiresAt > 0 && s.now().Unix() >= data.ExpiresAt {
		return "", fmt.Errorf("%w: session expired", api.ErrUnauthorized)
	}

	return data.SessionToken, nil
}

// Status описывает источник и срок действия текущей сессии
func (s *Session) Status(ctx context.Context) (*Status, error) {
	if s.envToken != "" {
		subject, exp := inspectToken(s.envToken)
		return &Status{
			Source:        SourceEnv,
			Subject:       subject,
			ExpiresAt:     exp,
			Authenticated: exp.IsZero() || exp.After(s.now()),
		}, nil
	}

	data, err := s.storage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return &Status{Source: SourceNone}, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	st := &Status{Source: SourceStored, Subject: data.Subject, Authenticated: true}
	if data.ExpiresAt > 0 {
		st.ExpiresAt = time.Unix(data.ExpiresAt, 0)
		st.Authenticated = s.now().Unix() < data.ExpiresAt
	}
	return st, nil
}

// Clear удаляет сохраненную сессию. Отсутствие сессии не является ошибкой.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.storage.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// inspectToken извлекает subject и exp из JWT; для непрозрачного токена возвращает нулевые значения
func inspectToken(token string) (string, time.Time) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}
	}

	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return claims.Subject, exp
}
