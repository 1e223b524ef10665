// Package export writes cached sheet snapshots to local files.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iudanet/sheetkeeper/internal/models"
)

const (
	// MaxSheetNameLen ограничение Excel на длину имени листа
	MaxSheetNameLen  = 31
	defaultSheetName = "Sheet1"
)

// ErrNothingToExport означает, что снапшот не содержит строк
var ErrNothingToExport = errors.New("snapshot has no rows")

// WriteXLSX writes snapshot as a single-worksheet workbook named after the tab.
// The header row is bold; every cell is written as its formatted string.
func WriteXLSX(snapshot *models.SheetSnapshot, w io.Writer) error {
	if snapshot == nil || len(snapshot.TableData) == 0 {
		return ErrNothingToExport
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := SheetName(snapshot.Tab)
	if current := f.GetSheetName(0); current != sheet {
		if err := f.SetSheetName(current, sheet); err != nil {
			return fmt.Errorf("failed to name worksheet: %w", err)
		}
	}

	width := 0
	for i, row := range snapshot.TableData {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
		width = max(width, len(row))
	}

	if header := snapshot.Header(); len(header) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(header), 1)
		if err != nil {
			return fmt.Errorf("failed to address header: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
		if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	if width > 0 {
		lastCol, err := excelize.ColumnNumberToName(width)
		if err != nil {
			return fmt.Errorf("failed to address columns: %w", err)
		}
		if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SheetName converts a tab title into a valid worksheet name
func SheetName(tab string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return -1
		}
		return r
	}, tab)
	name = strings.Trim(strings.TrimSpace(name), "'")

	if runes := []rune(name); len(runes) > MaxSheetNameLen {
		name = string(runes[:MaxSheetNameLen])
	}
	if name == "" {
		return defaultSheetName
	}
	return name
}
