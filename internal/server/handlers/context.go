package handlers

import "context"

// contextKey тип для ключей контекста
type contextKey string

// SessionKey ключ для хранения claims сессии в контексте
const SessionKey contextKey = "session"

// WithSession добавляет claims сессии в контекст запроса
func WithSession(ctx context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(ctx, SessionKey, claims)
}

// GetSession извлекает claims сессии из контекста запроса
func GetSession(ctx context.Context) (*SessionClaims, bool) {
	claims, ok := ctx.Value(SessionKey).(*SessionClaims)
	return claims, ok && claims != nil
}
