package api

// SessionRequest представляет запрос POST /api/session.
// AccessToken - OAuth access token Google, полученный вне приложения.
type SessionRequest struct {
	AccessToken string `json:"accessToken"`
	Email       string `json:"email,omitempty"`
}

// SessionResponse представляет выданную шлюзом сессию
type SessionResponse struct {
	SessionToken string `json:"sessionToken"` // JWT сессии
	ExpiresAt    int64  `json:"expiresAt"`    // unix timestamp
	Success      bool   `json:"success"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
