package sync

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iudanet/sheetkeeper/internal/models"
	"github.com/iudanet/sheetkeeper/internal/validation"
	pkgapi "github.com/iudanet/sheetkeeper/pkg/api"
)

// UpdateRow overwrites row rowNumber (1-based, header is row 1) of (sheetID, tab).
// When the gateway cannot be reached the write is queued and applied to the local view;
// the returned error is non-nil only for rejected writes.
func (e *Engine) UpdateRow(ctx context.Context, sheetID, tab string, rowNumber int, values []string) (WriteResult, error) {
	op := models.PendingOperation{
		SheetID: sheetID,
		Tab:     tab,
		Kind:    models.OperationUpdate,
		Payload: models.OperationPayload{RowNumber: rowNumber, Values: values},
	}

	err := validation.ValidateSheetID(sheetID)
	if err == nil {
		err = validation.ValidateUpdate(tab, rowNumber, values)
	}
	if err != nil {
		return e.reject(op, err)
	}
	return e.write(ctx, op)
}

// AppendRow adds values as a new row after the last occupied row of (sheetID, tab).
func (e *Engine) AppendRow(ctx context.Context, sheetID, tab string, values []string) (WriteResult, error) {
	op := models.PendingOperation{
		SheetID: sheetID,
		Tab:     tab,
		Kind:    models.OperationAppend,
		Payload: models.OperationPayload{Values: values},
	}

	err := validation.ValidateSheetID(sheetID)
	if err == nil {
		err = validation.ValidateAppend(tab, values)
	}
	if err != nil {
		return e.reject(op, err)
	}
	return e.write(ctx, op)
}

func (e *Engine) reject(op models.PendingOperation, err error) (WriteResult, error) {
	e.logger.Info("Write rejected", "type", op.Kind, "sheet_id", op.SheetID, "tab", op.Tab, "error", err)
	e.notify(Notice{Kind: NoticeError, Message: err.Error(), SheetID: op.SheetID, Tab: op.Tab})
	return WriteRejected, err
}

func (e *Engine) write(ctx context.Context, op models.PendingOperation) (WriteResult, error) {
	ctx, span := e.tracer.Start(ctx, "sync.Write", trace.WithAttributes(
		attribute.String("sheet.id", op.SheetID),
		attribute.String("sheet.tab", op.Tab),
		attribute.String("operation.type", string(op.Kind)),
	))
	defer span.End()

	e.activate(models.CacheKey(op.SheetID, op.Tab))

	err := e.send(ctx, op)
	if err == nil {
		e.logger.Info("Write applied", "type", op.Kind, "sheet_id", op.SheetID, "tab", op.Tab)
		// После записи источник истины - сервер
		e.FetchAndRender(ctx, op.SheetID, op.Tab)
		return WriteApplied, nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	switch Classify(err) {
	case KindAuthorization:
		e.logger.Warn("Write rejected, session expired", "type", op.Kind, "sheet_id", op.SheetID, "tab", op.Tab)
		e.notify(Notice{Kind: NoticeSessionExpired, Message: "session expired, please log in again", SheetID: op.SheetID, Tab: op.Tab})
		return WriteRejected, err
	case KindValidation:
		return e.reject(op, err)
	}

	e.queueWrite(ctx, op, err)
	return WriteQueued, nil
}

// send выполняет операцию на шлюзе
func (e *Engine) send(ctx context.Context, op models.PendingOperation) error {
	switch op.Kind {
	case models.OperationUpdate:
		return e.remote.UpdateRow(ctx, op.SheetID, pkgapi.UpdateRowRequest{
			Tab:       op.Tab,
			Values:    op.Payload.Values,
			RowNumber: op.Payload.RowNumber,
		})
	case models.OperationAppend:
		return e.remote.AppendRow(ctx, op.SheetID, pkgapi.AppendRowRequest{
			Tab:    op.Tab,
			Values: op.Payload.Values,
		})
	default:
		return &validation.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown operation %q", op.Kind)}
	}
}

// queueWrite ставит операцию в очередь и применяет ее к локальному представлению.
// Ошибка сохранения в очередь только логируется: локальное представление обновляется в любом случае.
func (e *Engine) queueWrite(ctx context.Context, op models.PendingOperation, cause error) {
	op.ID = e.newID()
	op.CreatedAt = e.now()

	if !e.queue.Enqueue(ctx, op) {
		e.logger.Error("Failed to queue write, change is only kept in the local view", "op_id", op.ID, "type", op.Kind, "sheet_id", op.SheetID, "tab", op.Tab)
	} else {
		e.logger.Info("Write queued", "op_id", op.ID, "type", op.Kind, "sheet_id", op.SheetID, "tab", op.Tab, "cause", cause)
	}

	snap := e.optimisticBase(ctx, op.SheetID, op.Tab)
	ApplyOperation(snap, op)
	e.cache.Save(ctx, snap)

	e.publish(View{SheetID: op.SheetID, Tab: op.Tab, State: ViewPending, Snapshot: snap, Err: cause})
	e.notify(Notice{Kind: NoticeQueued, Message: "queued, will sync", SheetID: op.SheetID, Tab: op.Tab, Count: 1})
}

// optimisticBase возвращает состояние, к которому применяется мутация:
// представление в памяти, затем кеш снапшотов, затем пустая таблица
func (e *Engine) optimisticBase(ctx context.Context, sheetID, tab string) *models.SheetSnapshot {
	if snap, ok := e.view(models.CacheKey(sheetID, tab)); ok {
		return snap
	}
	if snap, ok := e.cache.Load(ctx, sheetID, tab); ok {
		return snap
	}
	return &models.SheetSnapshot{SheetID: sheetID, Tab: tab, CapturedAt: e.now()}
}

// ApplyOperation applies op to snap in place the way the gateway would.
// New cells get metadata without formula and options.
func ApplyOperation(snap *models.SheetSnapshot, op models.PendingOperation) {
	ensureMeta(snap)
	values := append([]string(nil), op.Payload.Values...)

	switch op.Kind {
	case models.OperationUpdate:
		idx := op.Payload.RowNumber - 1
		if idx < 0 {
			return
		}
		for len(snap.TableData) <= idx {
			snap.TableData = append(snap.TableData, []string{})
			snap.GridMeta = append(snap.GridMeta, models.PlainCells(0))
		}
		snap.TableData[idx] = values
		snap.GridMeta[idx] = resizeMeta(snap.GridMeta[idx], len(values))
	case models.OperationAppend:
		snap.TableData = append(snap.TableData, values)
		snap.GridMeta = append(snap.GridMeta, models.PlainCells(len(values)))
	}

	snap.RecomputeStats()
}

// ensureMeta выравнивает GridMeta по форме TableData
func ensureMeta(snap *models.SheetSnapshot) {
	meta := make([][]models.CellMeta, len(snap.TableData))
	for i, row := range snap.TableData {
		var existing []models.CellMeta
		if i < len(snap.GridMeta) {
			existing = snap.GridMeta[i]
		}
		meta[i] = resizeMeta(existing, len(row))
	}
	snap.GridMeta = meta
}

func resizeMeta(row []models.CellMeta, n int) []models.CellMeta {
	if len(row) >= n {
		return row[:n]
	}
	return append(row, models.PlainCells(n-len(row))...)
}
