package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/sheetkeeper/pkg/api"
)

var testSessionConfig = SessionConfig{Secret: []byte("test-secret"), TTL: time.Hour}

func TestIssueAndValidateSession(t *testing.T) {
	token, expiresAt, err := IssueSession(testSessionConfig, "google-token", "Alice@Example.com", time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := ValidateSession(testSessionConfig, token)
	require.NoError(t, err)
	assert.Equal(t, "google-token", claims.AccessToken)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, SessionIssuer, claims.Issuer)
}

func TestValidateSession_Rejects(t *testing.T) {
	expired, _, err := IssueSession(testSessionConfig, "google-token", "", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	otherSecret, _, err := IssueSession(SessionConfig{Secret: []byte("other"), TTL: time.Hour}, "google-token", "", time.Now())
	require.NoError(t, err)

	// Токен без подписи
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{
		AccessToken:      "google-token",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: SessionIssuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noAccess, _, err := IssueSession(testSessionConfig, "", "", time.Now())
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"wrong secret", otherSecret},
		{"alg none", unsigned},
		{"no access token", noAccess},
		{"garbage", "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateSession(testSessionConfig, tt.token)
			assert.Error(t, err)
		})
	}
}

func TestSessionSubject(t *testing.T) {
	assert.Equal(t, "bob@example.com", sessionSubject("tok", " Bob@Example.com "))

	hashed := sessionSubject("tok", "")
	assert.True(t, strings.HasPrefix(hashed, "token:"))
	assert.Len(t, hashed, len("token:")+16)
	assert.Equal(t, hashed, sessionSubject("tok", ""), "subject must be stable")
	assert.NotEqual(t, hashed, sessionSubject("other", ""))
}

func TestSessionHandler_Create(t *testing.T) {
	handler := NewSessionHandler(setupTestLogger(), setupTestSchemas(t), testSessionConfig)

	req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(`{"accessToken":"google-token","email":"alice@example.com"}`))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp api.SessionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	claims, err := ValidateSession(testSessionConfig, resp.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
}

func TestSessionHandler_Create_InvalidPayload(t *testing.T) {
	handler := NewSessionHandler(setupTestLogger(), setupTestSchemas(t), testSessionConfig)

	for _, body := range []string{`{}`, `{"accessToken":""}`, `{"accessToken":42}`, `nope`} {
		req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, api.CodeInvalidPayload, decodeError(t, w).Error, body)
	}
}
