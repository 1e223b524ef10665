package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/sheetkeeper/internal/client/storage"
	pkgapi "github.com/iudanet/sheetkeeper/pkg/api"
)

//go:generate moq -out exchanger_mock.go . SessionExchanger

// SessionExchanger обменивает access token Google на сессию шлюза
type SessionExchanger interface {
	CreateSession(ctx context.Context, req pkgapi.SessionRequest) (*pkgapi.SessionResponse, error)
}

// Service предоставляет функции авторизации
type Service struct {
	exchanger SessionExchanger
	session   *Session
}

// NewService создает новый сервис авторизации
func NewService(exchanger SessionExchanger, session *Session) *Service {
	return &Service{exchanger: exchanger, session: session}
}

// Login обменивает access token на сессию и сохраняет ее
func (s *Service) Login(ctx context.Context, accessToken, email string) (*storage.AuthData, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, fmt.Errorf("access token cannot be empty")
	}

	resp, err := s.exchanger.CreateSession(ctx, pkgapi.SessionRequest{AccessToken: accessToken, Email: email})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return s.session.Save(ctx, resp.SessionToken)
}

// UseToken сохраняет уже выданный сессионный токен
func (s *Service) UseToken(ctx context.Context, sessionToken string) (*storage.AuthData, error) {
	return s.session.Save(ctx, sessionToken)
}

// Logout удаляет локальную сессию
func (s *Service) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}

// Status описывает текущую сессию
func (s *Service) Status(ctx context.Context) (*Status, error) {
	return s.session.Status(ctx)
}
