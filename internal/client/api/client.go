package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/sheetkeeper/pkg/api"
)

// OfflineCacheHeader помечает ответ, отданный из офлайн-кеша HTTP
const OfflineCacheHeader = "X-Sheetkeeper-Offline-Cache"

// DefaultTimeout таймаут запроса к шлюзу по умолчанию
const DefaultTimeout = 30 * time.Second

//go:generate moq -out token_mock.go . TokenSource

// TokenSource provides the bearer credential for gateway requests.
// It returns ErrUnauthorized when no valid credential is available.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client представляет HTTP клиент для взаимодействия со шлюзом
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	baseURL    string
}

// Option настраивает Client
type Option func(*Client)

// WithTimeout задает таймаут запросов
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithTransport задает RoundTripper (например, OfflineTransport)
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetSheet загружает вкладку таблицы
func (c *Client) GetSheet(ctx context.Context, sheetID, tab string) (*api.SheetResponse, error) {
	var resp api.SheetResponse
	path := fmt.Sprintf("/api/sheets/%s?tab=%s", url.PathEscape(sheetID), url.QueryEscape(tab))
	header, err := c.doRequest(ctx, "get sheet", http.MethodGet, path, true, nil, &resp)
	if err != nil {
		return nil, err
	}
	resp.Offline = header.Get(OfflineCacheHeader) == "hit"
	return &resp, nil
}

// UpdateRow перезаписывает строку таблицы
func (c *Client) UpdateRow(ctx context.Context, sheetID string, req api.UpdateRowRequest) error {
	path := "/api/sheets/" + url.PathEscape(sheetID)
	var resp api.SuccessResponse
	_, err := c.doRequest(ctx, "update row", http.MethodPut, path, true, req, &resp)
	return err
}

// AppendRow добавляет строку в конец вкладки
func (c *Client) AppendRow(ctx context.Context, sheetID string, req api.AppendRowRequest) error {
	path := "/api/sheets/" + url.PathEscape(sheetID)
	var resp api.SuccessResponse
	_, err := c.doRequest(ctx, "append row", http.MethodPost, path, true, req, &resp)
	return err
}

// ListTabs возвращает название таблицы и ее вкладки
func (c *Client) ListTabs(ctx context.Context, sheetID string) (*api.TabsResponse, error) {
	var resp api.TabsResponse
	path := fmt.Sprintf("/api/sheets/%s/tabs", url.PathEscape(sheetID))
	if _, err := c.doRequest(ctx, "list tabs", http.MethodGet, path, true, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSpreadsheets возвращает таблицы пользователя из Google Drive
func (c *Client) ListSpreadsheets(ctx context.Context) (*api.SpreadsheetListResponse, error) {
	var resp api.SpreadsheetListResponse
	if _, err := c.doRequest(ctx, "list spreadsheets", http.MethodGet, "/api/sheets", true, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateSession обменивает access token Google на сессию шлюза
func (c *Client) CreateSession(ctx context.Context, req api.SessionRequest) (*api.SessionResponse, error) {
	var resp api.SessionResponse
	if _, err := c.doRequest(ctx, "create session", http.MethodPost, "/api/session", false, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubscribePush регистрирует Web Push подписку для текущей сессии
func (c *Client) SubscribePush(ctx context.Context, sub api.PushSubscription) error {
	var resp api.SuccessResponse
	_, err := c.doRequest(ctx, "subscribe push", http.MethodPost, "/api/push/subscription", true, sub, &resp)
	return err
}

// UnsubscribePush удаляет Web Push подписку текущей сессии
func (c *Client) UnsubscribePush(ctx context.Context) error {
	var resp api.SuccessResponse
	_, err := c.doRequest(ctx, "unsubscribe push", http.MethodDelete, "/api/push/subscription", true, nil, &resp)
	return err
}

// Health проверяет доступность шлюза
func (c *Client) Health(ctx context.Context) error {
	var resp api.HealthResponse
	_, err := c.doRequest(ctx, "health", http.MethodGet, "/api/health", false, nil, &resp)
	return err
}

// doRequest выполняет HTTP запрос и классифицирует ошибки:
// ErrUnauthorized, *TransportError, *RemoteError или ошибка декодирования.
func (c *Client) doRequest(ctx context.Context, op, method, path string, auth bool, body, result any) (http.Header, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to marshal request body: %w", op, err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if auth {
		// Без валидной сессии запрос в сеть не отправляется
		token, err := c.tokens.Token(ctx)
		if err != nil {
			if errors.Is(err, ErrUnauthorized) {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			return nil, fmt.Errorf("%s: %w: %w", op, ErrUnauthorized, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		remote := &RemoteError{Op: op, Status: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			remote.Code = errResp.Error
			remote.Message = errResp.Message
			remote.Details = errResp.Details
		}
		return nil, remote
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
		}
	}

	return resp.Header, nil
}
