package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgapi "github.com/iudanet/sheetkeeper/pkg/api"
)

const (
	// DefaultSheetsBaseURL корень Google Sheets API
	DefaultSheetsBaseURL = "https://sheets.googleapis.com"
	// DefaultDriveBaseURL корень Google Drive API
	DefaultDriveBaseURL = "https://www.googleapis.com"

	spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"
	driveListFields     = "files(id,name,owners(displayName),modifiedTime)"
)

// Client вызывает Google Sheets v4 и Drive v3 с access token пользователя
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	sheetsBase string
	driveBase  string
}

// Config настраивает Client
type Config struct {
	SheetsBaseURL string
	DriveBaseURL  string
	Timeout       time.Duration
	Transport     http.RoundTripper
}

// NewClient creates an upstream client. Empty base URLs use the public Google endpoints.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.SheetsBaseURL == "" {
		cfg.SheetsBaseURL = DefaultSheetsBaseURL
	}
	if cfg.DriveBaseURL == "" {
		cfg.DriveBaseURL = DefaultDriveBaseURL
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Transport != nil {
		httpClient.Transport = cfg.Transport
	}

	return &Client{
		httpClient: httpClient,
		logger:     logger,
		sheetsBase: strings.TrimRight(cfg.SheetsBaseURL, "/"),
		driveBase:  strings.TrimRight(cfg.DriveBaseURL, "/"),
	}
}

// GetSheet reads one tab with grid data and flattens it.
func (c *Client) GetSheet(ctx context.Context, accessToken, sheetID, tab string) (*pkgapi.SheetResponse, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s?includeGridData=true&ranges=%s",
		c.sheetsBase, url.PathEscape(sheetID), url.QueryEscape(tab))

	raw, err := c.do(ctx, "get sheet", http.MethodGet, endpoint, accessToken, nil)
	if err != nil {
		return nil, err
	}
	return ParseGrid(raw)
}

// UpdateRow overwrites row rowNumber of tab; values are interpreted as user input.
func (c *Client) UpdateRow(ctx context.Context, accessToken, sheetID, tab string, rowNumber int, values []string) error {
	rng := UpdateRange(tab, rowNumber, len(values))
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?valueInputOption=USER_ENTERED",
		c.sheetsBase, url.PathEscape(sheetID), url.PathEscape(rng))

	body := valueRange{Range: rng, MajorDimension: "ROWS", Values: [][]string{values}}
	_, err := c.do(ctx, "update row", http.MethodPut, endpoint, accessToken, body)
	return err
}

// AppendRow appends values after the last occupied row of tab.
func (c *Client) AppendRow(ctx context.Context, accessToken, sheetID, tab string, values []string) error {
	rng := AppendRange(tab, len(values))
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=USER_ENTERED",
		c.sheetsBase, url.PathEscape(sheetID), url.PathEscape(rng))

	body := valueRange{Values: [][]string{values}}
	_, err := c.do(ctx, "append row", http.MethodPost, endpoint, accessToken, body)
	return err
}

// GetMetadata returns the spreadsheet title and its tab titles.
func (c *Client) GetMetadata(ctx context.Context, accessToken, sheetID string) (*Metadata, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s?fields=%s",
		c.sheetsBase, url.PathEscape(sheetID), url.QueryEscape("properties.title,sheets.properties.title"))

	raw, err := c.do(ctx, "get metadata", http.MethodGet, endpoint, accessToken, nil)
	if err != nil {
		return nil, err
	}
	return parseMetadata(raw)
}

// ListSpreadsheets lists the spreadsheets visible to the token owner in Drive.
func (c *Client) ListSpreadsheets(ctx context.Context, accessToken string) ([]pkgapi.SpreadsheetFile, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("mimeType='%s'", spreadsheetMimeType))
	query.Set("fields", driveListFields)
	endpoint := c.driveBase + "/drive/v3/files?" + query.Encode()

	raw, err := c.do(ctx, "list spreadsheets", http.MethodGet, endpoint, accessToken, nil)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Files []struct {
			ID           string `json:"id"`
			Name         string `json:"name"`
			ModifiedTime string `json:"modifiedTime"`
			Owners       []struct {
				DisplayName string `json:"displayName"`
			} `json:"owners"`
		} `json:"files"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode drive files: %w", err)
	}

	files := make([]pkgapi.SpreadsheetFile, 0, len(doc.Files))
	for _, f := range doc.Files {
		file := pkgapi.SpreadsheetFile{ID: f.ID, Name: f.Name, ModifiedTime: f.ModifiedTime}
		for _, o := range f.Owners {
			file.Owners = append(file.Owners, o.DisplayName)
		}
		files = append(files, file)
	}
	return files, nil
}

// valueRange тело запросов values.update и values.append
type valueRange struct {
	Range          string     `json:"range,omitempty"`
	MajorDimension string     `json:"majorDimension,omitempty"`
	Values         [][]string `json:"values"`
}

// do выполняет запрос к Google API и возвращает тело успешного ответа.
// Ответ не 2xx превращается в *UpstreamError.
func (c *Client) do(ctx context.Context, op, method, endpoint, accessToken string, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to marshal request body: %w", op, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response body: %w", op, err)
	}

	c.logger.DebugContext(ctx, "Upstream request",
		"op", op,
		"method", method,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, upstreamError(op, resp.StatusCode, respBody)
	}
	return respBody, nil
}
