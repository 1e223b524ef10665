package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/sheetkeeper/pkg/api"
)

// SessionIssuer значение claim iss в сессиях шлюза
const SessionIssuer = "sheetkeeper"

// SessionConfig содержит конфигурацию сессий шлюза
type SessionConfig struct {
	Secret []byte
	TTL    time.Duration
}

// SessionClaims представляет JWT claims сессии.
// AccessToken - OAuth access token Google, с которым шлюз обращается к API.
type SessionClaims struct {
	AccessToken string `json:"access_token"`
	Email       string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// IssueSession подписывает новую сессию (HS256) и возвращает токен и время истечения
func IssueSession(cfg SessionConfig, accessToken, email string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(cfg.TTL)

	claims := SessionClaims{
		AccessToken: accessToken,
		Email:       email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionSubject(accessToken, email),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    SessionIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateSession валидирует подпись и срок действия сессии
func ValidateSession(cfg SessionConfig, tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		return cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(SessionIssuer))
	if err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session")
	}
	if claims.AccessToken == "" {
		return nil, errors.New("session has no access token")
	}
	return claims, nil
}

// sessionSubject возвращает email или, если его нет, отпечаток access token
func sessionSubject(accessToken, email string) string {
	if email = strings.TrimSpace(email); email != "" {
		return strings.ToLower(email)
	}
	sum := sha256.Sum256([]byte(accessToken))
	return "token:" + hex.EncodeToString(sum[:8])
}

// SessionHandler выдает сессии шлюза
type SessionHandler struct {
	logger  *slog.Logger
	schemas *Schemas
	now     func() time.Time
	cfg     SessionConfig
}

// NewSessionHandler создает новый handler для выдачи сессий
func NewSessionHandler(logger *slog.Logger, schemas *Schemas, cfg SessionConfig) *SessionHandler {
	return &SessionHandler{
		logger:  logger,
		schemas: schemas,
		now:     time.Now,
		cfg:     cfg,
	}
}

// Create обрабатывает POST /api/session.
// Access token Google не проверяется здесь: его проверит Google при первом запросе к API.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SessionRequest
	if err := decodeValid(r, h.schemas.session, &req); err != nil {
		h.logger.WarnContext(ctx, "Invalid session request", "error", err)
		sendError(w, h.logger, http.StatusBadRequest, api.CodeInvalidPayload, err.Error())
		return
	}

	token, expiresAt, err := IssueSession(h.cfg, req.AccessToken, req.Email, h.now())
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to issue session", "error", err)
		sendError(w, h.logger, http.StatusInternalServerError, api.CodeUnknownError, "")
		return
	}

	h.logger.InfoContext(ctx, "Session issued", "subject", sessionSubject(req.AccessToken, req.Email), "expires_at", expiresAt.Unix())

	sendJSON(w, h.logger, api.SessionResponse{
		SessionToken: token,
		ExpiresAt:    expiresAt.Unix(),
		Success:      true,
	}, http.StatusOK)
}
