package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/sheetkeeper/internal/server/handlers"
	"github.com/iudanet/sheetkeeper/pkg/api"
)

// SessionCookie имя cookie с сессией шлюза
const SessionCookie = "sheetkeeper.session-token"

// SessionMiddleware создает middleware для проверки сессии шлюза.
// Сессия берется из заголовка Authorization: Bearer, а при его отсутствии из cookie.
func SessionMiddleware(logger *slog.Logger, cfg handlers.SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := sessionToken(r)
			if !ok {
				logger.Warn("Missing session", "path", r.URL.Path)
				handlers.SendError(w, logger, http.StatusUnauthorized, api.CodeUnauthorized, "missing session")
				return
			}

			claims, err := handlers.ValidateSession(cfg, tokenString)
			if err != nil {
				logger.Warn("Invalid session", "error", err)
				handlers.SendError(w, logger, http.StatusUnauthorized, api.CodeUnauthorized, "invalid session")
				return
			}

			logger.Debug("Session authenticated", "subject", claims.Subject)

			next.ServeHTTP(w, r.WithContext(handlers.WithSession(r.Context(), claims)))
		})
	}
}

// sessionToken извлекает токен сессии из запроса
func sessionToken(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		// Ожидаем формат: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
