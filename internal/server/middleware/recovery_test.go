package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/sheetkeeper/pkg/api"
)

func TestRecoveryMiddleware(t *testing.T) {
	tests := []struct {
		handler http.HandlerFunc
		name    string
		panics  bool
	}{
		{
			name: "no panic",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
		},
		{
			name:   "panic with string",
			panics: true,
			handler: func(w http.ResponseWriter, r *http.Request) {
				panic("boom")
			},
		},
		{
			name:   "panic with error",
			panics: true,
			handler: func(w http.ResponseWriter, r *http.Request) {
				var m map[string]int
				m["x"] = 1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf strings.Builder
			logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelError}))

			req := httptest.NewRequest(http.MethodGet, "/api/sheets/S1", nil)
			w := httptest.NewRecorder()

			assert.NotPanics(t, func() {
				RecoveryMiddleware(logger)(tt.handler).ServeHTTP(w, req)
			})

			if !tt.panics {
				assert.Equal(t, http.StatusOK, w.Code)
				assert.Empty(t, logBuf.String())
				return
			}

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, api.CodeUnknownError, resp.Error)
			assert.Empty(t, resp.Message, "panic details must not leak")

			logOutput := logBuf.String()
			assert.Contains(t, logOutput, "Panic recovered")
			assert.Contains(t, logOutput, "stack=")
			assert.Contains(t, logOutput, "path=/api/sheets/S1")
		})
	}
}

func TestRecoveryMiddleware_AbortHandlerPropagates(t *testing.T) {
	handler := RecoveryMiddleware(setupTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
