package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/sheetkeeper/pkg/api"
)

func staticToken(token string) *TokenSourceMock {
	return &TokenSourceMock{
		TokenFunc: func(ctx context.Context) (string, error) {
			return token, nil
		},
	}
}

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL, staticToken("t"))

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)

	client = NewClient(baseURL, staticToken("t"), WithTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
}

// TestClient_GetSheet проверяет загрузку вкладки
func TestClient_GetSheet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/sheets/S1", r.URL.Path)
		assert.Equal(t, "Q1 plan", r.URL.Query().Get("tab"))
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"tableData": [["Name","Age"],["Alice","30"]],
			"gridMeta": [[{"isFormula":false,"options":null,"effectiveValue":null},{"isFormula":false,"options":null,"effectiveValue":null}],
			             [{"isFormula":false,"options":["Alice","Bob"],"effectiveValue":{"stringValue":"Alice"}},{"isFormula":true,"options":null,"effectiveValue":{"numberValue":30}}]],
			"sheetStats": {"rowCount":1,"columnCount":2},
			"rawSheet": {"spreadsheetId":"S1"}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("session-token"))
	resp, err := client.GetSheet(context.Background(), "S1", "Q1 plan")

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.Offline)
	assert.Equal(t, [][]string{{"Name", "Age"}, {"Alice", "30"}}, resp.TableData)
	assert.Equal(t, []string{"Alice", "Bob"}, resp.GridMeta[1][0].Options)
	assert.True(t, resp.GridMeta[1][1].IsFormula)
	assert.Equal(t, api.SheetStats{RowCount: 1, ColumnCount: 2}, resp.SheetStats)
	assert.JSONEq(t, `{"spreadsheetId":"S1"}`, string(resp.RawSheet))
}

// TestClient_UpdateAndAppend проверяет мутации строк
func TestClient_UpdateAndAppend(t *testing.T) {
	var gotUpdate api.UpdateRowRequest
	var gotAppend api.AppendRowRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sheets/S1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		switch r.Method {
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotUpdate))
		case http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotAppend))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
		_ = json.NewEncoder(w).Encode(api.SuccessResponse{Success: true})
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("t"))
	ctx := context.Background()

	require.NoError(t, client.UpdateRow(ctx, "S1", api.UpdateRowRequest{Tab: "Sheet1", RowNumber: 2, Values: []string{"Bob"}}))
	require.NoError(t, client.AppendRow(ctx, "S1", api.AppendRowRequest{Tab: "Sheet1", Values: []string{"Carol", "41"}}))

	assert.Equal(t, api.UpdateRowRequest{Tab: "Sheet1", RowNumber: 2, Values: []string{"Bob"}}, gotUpdate)
	assert.Equal(t, api.AppendRowRequest{Tab: "Sheet1", Values: []string{"Carol", "41"}}, gotAppend)
}

// TestClient_ErrorClassification проверяет классификацию ответов шлюза
func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		statusCode  int
		wantUnauth  bool
		wantStatus  int
		wantCode    string
		serverFault bool
		throttled   bool
	}{
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			body:       `{"success":false,"error":"UNAUTHORIZED"}`,
			wantUnauth: true,
		},
		{
			name:       "client fault",
			statusCode: http.StatusBadRequest,
			body:       `{"success":false,"error":"INVALID_PAYLOAD"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeInvalidPayload,
		},
		{
			name:       "upstream forbidden",
			statusCode: http.StatusForbidden,
			body:       `{"success":false,"error":"FAILED_TO_UPDATE","status":403,"details":{"error":{"code":403}}}`,
			wantStatus: http.StatusForbidden,
			wantCode:   api.CodeFailedToUpdate,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			body:       `{"success":false,"error":"RATE_LIMITED","message":"rate limit exceeded, please try again later"}`,
			wantStatus: http.StatusTooManyRequests,
			wantCode:   api.CodeRateLimited,
			throttled:  true,
		},
		{
			name:        "server fault with non-json body",
			statusCode:  http.StatusBadGateway,
			body:        `Bad Gateway`,
			wantStatus:  http.StatusBadGateway,
			serverFault: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, staticToken("t"))
			err := client.UpdateRow(context.Background(), "S1", api.UpdateRowRequest{Tab: "Sheet1", RowNumber: 2, Values: []string{}})
			require.Error(t, err)

			if tt.wantUnauth {
				assert.ErrorIs(t, err, ErrUnauthorized)
				return
			}

			var remote *RemoteError
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, tt.wantStatus, remote.Status)
			assert.Equal(t, tt.wantCode, remote.Code)
			assert.Equal(t, tt.serverFault, remote.ServerFault())
			assert.Equal(t, tt.throttled, remote.Throttled())
		})
	}
}

// TestClient_MissingSessionSkipsNetwork проверяет, что без сессии запрос не отправляется
func TestClient_MissingSessionSkipsNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	tokens := &TokenSourceMock{
		TokenFunc: func(ctx context.Context) (string, error) {
			return "", ErrUnauthorized
		},
	}
	client := NewClient(server.URL, tokens)

	_, err := client.GetSheet(context.Background(), "S1", "Sheet1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, called)
	assert.Len(t, tokens.TokenCalls(), 1)
}

// TestClient_TokenSourceFailure проверяет, что ошибка хранилища сессии считается отсутствием сессии
func TestClient_TokenSourceFailure(t *testing.T) {
	tokens := &TokenSourceMock{
		TokenFunc: func(ctx context.Context) (string, error) {
			return "", errors.New("storage is closed")
		},
	}
	client := NewClient("http://127.0.0.1:0", tokens)

	err := client.AppendRow(context.Background(), "S1", api.AppendRowRequest{Tab: "Sheet1", Values: []string{}})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "storage is closed")
}

// TestClient_TransportError проверяет ошибку недоступности шлюза
func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, staticToken("t"))
	_, err := client.GetSheet(context.Background(), "S1", "Sheet1")

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, "get sheet", transport.Op)
}

// TestClient_ContextCancellation проверяет отмену запроса через контекст
func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Имитируем долгий запрос
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("t"))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := client.GetSheet(ctx, "S1", "Sheet1")

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestClient_InvalidJSON проверяет обработку невалидного JSON в ответе
func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("invalid json {{{"))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("t"))
	resp, err := client.GetSheet(context.Background(), "S1", "Sheet1")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "failed to decode response")

	var transport *TransportError
	var remote *RemoteError
	assert.False(t, errors.As(err, &transport))
	assert.False(t, errors.As(err, &remote))
}

// TestClient_HealthAndSessionDoNotNeedToken проверяет публичные запросы
func TestClient_HealthAndSessionDoNotNeedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/health":
			_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
		case "/api/session":
			var req api.SessionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ya29.token", req.AccessToken)
			_ = json.NewEncoder(w).Encode(api.SessionResponse{Success: true, SessionToken: "jwt", ExpiresAt: 42})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	tokens := &TokenSourceMock{}
	client := NewClient(server.URL, tokens)

	require.NoError(t, client.Health(context.Background()))

	resp, err := client.CreateSession(context.Background(), api.SessionRequest{AccessToken: "ya29.token"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.SessionToken)
	assert.Equal(t, int64(42), resp.ExpiresAt)
	assert.Empty(t, tokens.TokenCalls())
}

// TestClient_ListTabsAndSpreadsheets проверяет запросы метаданных
func TestClient_ListTabsAndSpreadsheets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/sheets/S1/tabs":
			_ = json.NewEncoder(w).Encode(api.TabsResponse{Success: true, Title: "Budget", Tabs: []string{"Sheet1", "Q1"}})
		case "/api/sheets":
			_ = json.NewEncoder(w).Encode(api.SpreadsheetListResponse{Success: true, Files: []api.SpreadsheetFile{{ID: "S1", Name: "Budget"}}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("t"))

	tabs, err := client.ListTabs(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, "Budget", tabs.Title)
	assert.Equal(t, []string{"Sheet1", "Q1"}, tabs.Tabs)

	list, err := client.ListSpreadsheets(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Files, 1)
	assert.Equal(t, "S1", list.Files[0].ID)
}

// TestClient_HTTPClientRedirect проверяет перенос Authorization при редиректах
func TestClient_HTTPClientRedirect(t *testing.T) {
	redirectCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if redirectCount < 3 {
			redirectCount++
			w.Header().Set("Location", "/api/sheets/S1/tabs?redirected=1")
			w.WriteHeader(http.StatusFound)
			return
		}

		assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(api.TabsResponse{Success: true, Title: "Budget"})
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("t"))
	resp, err := client.ListTabs(context.Background(), "S1")

	require.NoError(t, err)
	assert.Equal(t, "Budget", resp.Title)
	assert.Equal(t, 3, redirectCount)
}
