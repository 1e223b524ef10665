package api

import "encoding/json"

// GridMetaCell представляет метаданные ячейки в ответе шлюза
type GridMetaCell struct {
	Options        []string        `json:"options"`        // значения ONE_OF_LIST или null
	EffectiveValue json.RawMessage `json:"effectiveValue"` // вычисленное значение или null
	IsFormula      bool            `json:"isFormula"`      // ячейка содержит формулу
}

// SheetStats статистика вкладки
type SheetStats struct {
	RowCount    int `json:"rowCount"`    // количество строк без заголовка
	ColumnCount int `json:"columnCount"` // количество колонок
}

// SheetResponse представляет успешный ответ GET /api/sheets/{id}?tab=
type SheetResponse struct {
	TableData  [][]string       `json:"tableData"`
	GridMeta   [][]GridMetaCell `json:"gridMeta"`
	RawSheet   json.RawMessage  `json:"rawSheet,omitempty"` // исходный ответ Sheets API
	SheetStats SheetStats       `json:"sheetStats"`
	Success    bool             `json:"success"`

	// Offline выставляется клиентом, если ответ взят из офлайн-кеша HTTP
	Offline bool `json:"-"`
}

// UpdateRowRequest представляет запрос PUT /api/sheets/{id}
type UpdateRowRequest struct {
	Tab       string   `json:"tab"`
	Values    []string `json:"values"`
	RowNumber int      `json:"rowNumber"` // 1-based, заголовок - строка 1
}

// AppendRowRequest представляет запрос POST /api/sheets/{id}
type AppendRowRequest struct {
	Tab    string   `json:"tab"`
	Values []string `json:"values"`
}

// SuccessResponse представляет ответ на успешную мутацию
type SuccessResponse struct {
	Success bool `json:"success"`
}

// TabsResponse представляет ответ GET /api/sheets/{id}/tabs
type TabsResponse struct {
	Title   string   `json:"title"`
	Tabs    []string `json:"tabs"`
	Success bool     `json:"success"`
}

// SpreadsheetFile описывает таблицу из Google Drive
type SpreadsheetFile struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ModifiedTime string   `json:"modifiedTime,omitempty"`
	Owners       []string `json:"owners,omitempty"`
}

// SpreadsheetListResponse представляет ответ GET /api/sheets
type SpreadsheetListResponse struct {
	Files   []SpreadsheetFile `json:"files"`
	Success bool              `json:"success"`
}
