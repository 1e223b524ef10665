package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// CellMeta представляет метаданные одной ячейки таблицы.
// Options == nil означает, что у ячейки нет списка допустимых значений,
// EffectiveValue == nil означает отсутствие вычисленного значения.
type CellMeta struct {
	Options        []string        `json:"options"`        // Options значения из правила ONE_OF_LIST
	EffectiveValue json.RawMessage `json:"effectiveValue"` // EffectiveValue вычисленное значение (непрозрачное)
	IsFormula      bool            `json:"isFormula"`      // IsFormula ячейка содержит формулу
}

// UnmarshalJSON декодирует метаданные ячейки, сохраняя отсутствие вычисленного значения:
// JSON null в effectiveValue становится nil, а не литералом null.
func (c *CellMeta) UnmarshalJSON(data []byte) error {
	type plain CellMeta
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if bytes.Equal(bytes.TrimSpace(p.EffectiveValue), []byte("null")) {
		p.EffectiveValue = nil
	}
	*c = CellMeta(p)
	return nil
}

// SheetStats содержит краткую статистику по вкладке.
type SheetStats struct {
	RowCount    int `json:"rowCount"`    // RowCount количество строк без заголовка
	ColumnCount int `json:"columnCount"` // ColumnCount количество колонок
}

// SheetSnapshot представляет последнее известное состояние одной вкладки (sheetId, tab).
// Строка 0 в TableData - заголовок.
type SheetSnapshot struct {
	CapturedAt time.Time       `json:"capturedAt"`
	SheetID    string          `json:"sheetId"`
	Tab        string          `json:"tab"`
	TableData  [][]string      `json:"tableData"`
	GridMeta   [][]CellMeta    `json:"gridMeta"`
	RawPayload json.RawMessage `json:"rawPayload,omitempty"`
	SheetStats SheetStats      `json:"sheetStats"`
}

// CacheKey возвращает составной ключ вкладки в кеше снапшотов
func CacheKey(sheetID, tab string) string {
	return sheetID + ":" + tab
}

// Key returns the composite cache key of the snapshot.
func (s *SheetSnapshot) Key() string {
	return CacheKey(s.SheetID, s.Tab)
}

// Header returns the header row or nil when the table is empty.
func (s *SheetSnapshot) Header() []string {
	if len(s.TableData) == 0 {
		return nil
	}
	return s.TableData[0]
}

// Rows returns the data rows (everything below the header).
func (s *SheetSnapshot) Rows() [][]string {
	if len(s.TableData) <= 1 {
		return nil
	}
	return s.TableData[1:]
}

// ShapeMatches reports whether TableData and GridMeta have the same row/column shape.
// An absent GridMeta is considered matching.
func (s *SheetSnapshot) ShapeMatches() bool {
	if s.GridMeta == nil {
		return true
	}
	if len(s.GridMeta) != len(s.TableData) {
		return false
	}
	for i := range s.TableData {
		if len(s.GridMeta[i]) != len(s.TableData[i]) {
			return false
		}
	}
	return true
}

// RecomputeStats пересчитывает SheetStats по текущей таблице.
// ColumnCount берется из заголовка, если он есть, иначе сохраняется прежнее значение.
func (s *SheetSnapshot) RecomputeStats() {
	rows := len(s.TableData) - 1
	if rows < 0 {
		rows = 0
	}
	s.SheetStats.RowCount = rows
	if len(s.TableData) > 0 {
		s.SheetStats.ColumnCount = len(s.TableData[0])
	}
}

// Clone создает глубокую копию снапшота
func (s *SheetSnapshot) Clone() *SheetSnapshot {
	clone := &SheetSnapshot{
		CapturedAt: s.CapturedAt,
		SheetID:    s.SheetID,
		Tab:        s.Tab,
		SheetStats: s.SheetStats,
	}

	if s.TableData != nil {
		clone.TableData = make([][]string, len(s.TableData))
		for i, row := range s.TableData {
			clone.TableData[i] = append([]string(nil), row...)
		}
	}

	if s.GridMeta != nil {
		clone.GridMeta = make([][]CellMeta, len(s.GridMeta))
		for i, row := range s.GridMeta {
			metaRow := make([]CellMeta, len(row))
			for j, cell := range row {
				metaRow[j] = cell.Clone()
			}
			clone.GridMeta[i] = metaRow
		}
	}

	if s.RawPayload != nil {
		clone.RawPayload = append(json.RawMessage(nil), s.RawPayload...)
	}

	return clone
}

// Clone returns a deep copy of the cell metadata.
func (c CellMeta) Clone() CellMeta {
	out := CellMeta{IsFormula: c.IsFormula}
	if c.Options != nil {
		out.Options = append([]string(nil), c.Options...)
	}
	if c.EffectiveValue != nil {
		out.EffectiveValue = append(json.RawMessage(nil), c.EffectiveValue...)
	}
	return out
}

// PlainCells возвращает метаданные для n ячеек без формул и без списков значений
func PlainCells(n int) []CellMeta {
	return make([]CellMeta, n)
}
