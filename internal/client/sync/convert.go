package sync

import (
	"encoding/json"
	"time"

	"github.com/iudanet/sheetkeeper/internal/models"
	pkgapi "github.com/iudanet/sheetkeeper/pkg/api"
)

// SnapshotFromResponse converts a gateway read response into a snapshot of (sheetID, tab).
func SnapshotFromResponse(sheetID, tab string, resp *pkgapi.SheetResponse, capturedAt time.Time) *models.SheetSnapshot {
	snap := &models.SheetSnapshot{
		SheetID:    sheetID,
		Tab:        tab,
		CapturedAt: capturedAt,
		SheetStats: models.SheetStats{
			RowCount:    resp.SheetStats.RowCount,
			ColumnCount: resp.SheetStats.ColumnCount,
		},
	}

	if resp.TableData != nil {
		snap.TableData = make([][]string, len(resp.TableData))
		for i, row := range resp.TableData {
			snap.TableData[i] = append([]string(nil), row...)
		}
	}

	if resp.GridMeta != nil {
		snap.GridMeta = make([][]models.CellMeta, len(resp.GridMeta))
		for i, row := range resp.GridMeta {
			metaRow := make([]models.CellMeta, len(row))
			for j, cell := range row {
				metaRow[j] = models.CellMeta{
					Options:        cell.Options,
					EffectiveValue: rawOrNil(cell.EffectiveValue),
					IsFormula:      cell.IsFormula,
				}.Clone()
			}
			snap.GridMeta[i] = metaRow
		}
	}

	if len(resp.RawSheet) > 0 {
		snap.RawPayload = append(json.RawMessage(nil), resp.RawSheet...)
	}

	return snap
}

// rawOrNil превращает JSON null в отсутствующее значение
func rawOrNil(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}
