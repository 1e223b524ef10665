package sheets

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgapi "github.com/iudanet/sheetkeeper/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		want  string
		index int
	}{
		{index: -3, want: "A"},
		{index: 0, want: "A"},
		{index: 1, want: "A"},
		{index: 2, want: "B"},
		{index: 26, want: "Z"},
		{index: 27, want: "AA"},
		{index: 52, want: "AZ"},
		{index: 53, want: "BA"},
		{index: 702, want: "ZZ"},
		{index: 703, want: "AAA"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ColumnLetter(tt.index))
		})
	}
}

func TestRanges(t *testing.T) {
	assert.Equal(t, "Sheet1!A2:C2", UpdateRange("Sheet1", 2, 3))
	assert.Equal(t, "Sheet1!A5:A5", UpdateRange("Sheet1", 5, 0))
	assert.Equal(t, "Sheet1!A:AA", AppendRange("Sheet1", 27))
	assert.Equal(t, "Sheet1!A:A", AppendRange("Sheet1", 0))
}

func TestParseGrid(t *testing.T) {
	raw, err := os.ReadFile("testdata/spreadsheet.json")
	require.NoError(t, err)

	resp, err := ParseGrid(raw)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, [][]string{{"Name", "Status", "Total"}, {"Alice", "open", "3"}, {""}}, resp.TableData)
	assert.Equal(t, pkgapi.SheetStats{RowCount: 2, ColumnCount: 3}, resp.SheetStats)
	assert.JSONEq(t, string(raw), string(resp.RawSheet))

	require.Len(t, resp.GridMeta, 3)
	status := resp.GridMeta[1][1]
	assert.False(t, status.IsFormula)
	assert.Equal(t, []string{"open", "done", ""}, status.Options)

	total := resp.GridMeta[1][2]
	assert.True(t, total.IsFormula)
	assert.Nil(t, total.Options)
	assert.JSONEq(t, `{"numberValue":3}`, string(total.EffectiveValue))

	empty := resp.GridMeta[2][0]
	assert.Equal(t, "null", string(empty.EffectiveValue))
	assert.Nil(t, empty.Options)
}

func TestParseGrid_EmptyTab(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		columns int
	}{
		{name: "grid properties", raw: `{"sheets":[{"properties":{"gridProperties":{"columnCount":7}},"data":[{}]}]}`, columns: 7},
		{name: "no grid properties", raw: `{"sheets":[{"properties":{}}]}`, columns: 0},
		{name: "no sheets", raw: `{}`, columns: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseGrid([]byte(tt.raw))
			require.NoError(t, err)
			assert.Empty(t, resp.TableData)
			assert.NotNil(t, resp.TableData)
			assert.Equal(t, pkgapi.SheetStats{RowCount: 0, ColumnCount: tt.columns}, resp.SheetStats)
		})
	}
}

func TestParseGrid_InvalidJSON(t *testing.T) {
	_, err := ParseGrid([]byte(`<html>`))
	assert.Error(t, err)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{SheetsBaseURL: srv.URL, DriveBaseURL: srv.URL}, setupTestLogger())
}

func TestClient_GetSheet(t *testing.T) {
	raw, err := os.ReadFile("testdata/spreadsheet.json")
	require.NoError(t, err)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v4/spreadsheets/S1", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("includeGridData"))
		assert.Equal(t, "My Tab", r.URL.Query().Get("ranges"))
		assert.Equal(t, "Bearer google-token", r.Header.Get("Authorization"))
		_, _ = w.Write(raw)
	})

	resp, err := client.GetSheet(t.Context(), "google-token", "S1", "My Tab")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.SheetStats.RowCount)
}

func TestClient_UpdateRow(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v4/spreadsheets/S1/values/Sheet1!A3:B3", r.URL.Path)
		assert.Equal(t, "USER_ENTERED", r.URL.Query().Get("valueInputOption"))

		var body valueRange
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, valueRange{Range: "Sheet1!A3:B3", MajorDimension: "ROWS", Values: [][]string{{"Bob", "=A1"}}}, body)
		_, _ = w.Write([]byte(`{"updatedRows":1}`))
	})

	require.NoError(t, client.UpdateRow(t.Context(), "google-token", "S1", "Sheet1", 3, []string{"Bob", "=A1"}))
}

func TestClient_AppendRow(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v4/spreadsheets/S1/values/Sheet1!A:A:append", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"values": []any{[]any{}}}, body)
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, client.AppendRow(t.Context(), "google-token", "S1", "Sheet1", []string{}))
}

func TestClient_UpstreamError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		details string
		status  int
	}{
		{name: "json body", status: http.StatusForbidden, body: `{"error":{"code":403}}`, details: `{"error":{"code":403}}`},
		{name: "non json body", status: http.StatusBadGateway, body: `bad gateway`, details: `{}`},
		{name: "empty body", status: http.StatusNotFound, body: ``, details: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetSheet(t.Context(), "google-token", "S1", "Sheet1")
			var upstream *UpstreamError
			require.True(t, errors.As(err, &upstream))
			assert.Equal(t, tt.status, upstream.Status)
			assert.JSONEq(t, tt.details, string(upstream.Body))
		})
	}
}

func TestClient_GetMetadata(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/spreadsheets/S1", r.URL.Path)
		assert.Equal(t, "properties.title,sheets.properties.title", r.URL.Query().Get("fields"))
		_, _ = w.Write([]byte(`{"properties":{"title":"Team"},"sheets":[{"properties":{"title":"Sheet1"}},{"properties":{"title":"Archive"}}]}`))
	})

	md, err := client.GetMetadata(t.Context(), "google-token", "S1")
	require.NoError(t, err)
	assert.Equal(t, &Metadata{Title: "Team", Tabs: []string{"Sheet1", "Archive"}}, md)
}

func TestClient_ListSpreadsheets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drive/v3/files", r.URL.Path)
		assert.Equal(t, "mimeType='application/vnd.google-apps.spreadsheet'", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"files":[{"id":"S1","name":"Team","modifiedTime":"2026-01-02T03:04:05Z","owners":[{"displayName":"Alice"}]}]}`))
	})

	files, err := client.ListSpreadsheets(t.Context(), "google-token")
	require.NoError(t, err)
	assert.Equal(t, []pkgapi.SpreadsheetFile{{
		ID:           "S1",
		Name:         "Team",
		ModifiedTime: "2026-01-02T03:04:05Z",
		Owners:       []string{"Alice"},
	}}, files)
}
