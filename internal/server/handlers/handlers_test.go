package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/sheetkeeper/pkg/api"
)

// setupTestLogger создает logger для тестов
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupTestSchemas(t *testing.T) *Schemas {
	t.Helper()
	schemas, err := LoadSchemas()
	require.NoError(t, err)
	return schemas
}

var testClaims = &SessionClaims{
	AccessToken:      "google-token",
	Email:            "alice@example.com",
	RegisteredClaims: jwt.RegisteredClaims{Subject: "alice@example.com"},
}

// newRequest создает запрос с сессией в контексте и id таблицы в пути
func newRequest(method, target, body string, withSession bool) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.SetPathValue("id", "S1")
	if withSession {
		req = req.WithContext(WithSession(req.Context(), testClaims))
	}
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	return resp
}

func TestDecodeValid(t *testing.T) {
	schemas := setupTestSchemas(t)

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"tab":"Sheet1","rowNumber":2,"values":["a","b"]}`, false},
		{"empty values", `{"tab":"Sheet1","rowNumber":2,"values":[]}`, false},
		{"missing row", `{"tab":"Sheet1","values":["a"]}`, true},
		{"zero row", `{"tab":"Sheet1","rowNumber":0,"values":["a"]}`, true},
		{"fractional row", `{"tab":"Sheet1","rowNumber":1.5,"values":["a"]}`, true},
		{"values not array", `{"tab":"Sheet1","rowNumber":2,"values":"a"}`, true},
		{"missing tab", `{"rowNumber":2,"values":["a"]}`, true},
		{"not json", `tab=Sheet1`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/sheets/S1", strings.NewReader(tt.body))
			var dst api.UpdateRowRequest
			err := decodeValid(req, schemas.update, &dst)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Sheet1", dst.Tab)
			assert.Equal(t, 2, dst.RowNumber)
		})
	}
}
