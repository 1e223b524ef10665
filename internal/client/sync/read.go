package sync

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iudanet/sheetkeeper/internal/models"
	"github.com/iudanet/sheetkeeper/internal/validation"
)

// FetchAndRender reads (sheetID, tab) from the gateway and renders the result.
// On failure the cached snapshot is rendered instead; the returned view always describes what was shown.
// A result that completes after a newer request for the same key was issued is discarded.
func (e *Engine) FetchAndRender(ctx context.Context, sheetID, tab string) View {
	ctx, span := e.tracer.Start(ctx, "sync.FetchAndRender", trace.WithAttributes(
		attribute.String("sheet.id", sheetID),
		attribute.String("sheet.tab", tab),
	))
	defer span.End()

	key := models.CacheKey(sheetID, tab)
	seq := e.begin(key)

	if err := validateTarget(sheetID, tab); err != nil {
		view := View{SheetID: sheetID, Tab: tab, State: ViewError, Err: err}
		e.publish(view)
		e.notify(Notice{Kind: NoticeError, Message: err.Error(), SheetID: sheetID, Tab: tab})
		return view
	}

	resp, err := e.remote.GetSheet(ctx, sheetID, tab)

	if !e.current(key, seq) {
		e.logger.Debug("Discarding superseded sheet read", "sheet_id", sheetID, "tab", tab, "seq", seq)
		span.SetAttributes(attribute.Bool("sheet.superseded", true))
		return View{SheetID: sheetID, Tab: tab, State: ViewSuperseded, Err: err}
	}

	var view View
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		view = e.readFailed(ctx, sheetID, tab, err)
	} else if resp.Offline {
		view = e.readOfflineResponse(ctx, sheetID, tab, SnapshotFromResponse(sheetID, tab, resp, e.now()))
	} else {
		snap := SnapshotFromResponse(sheetID, tab, resp, e.now())
		e.cache.Save(ctx, snap)
		view = View{SheetID: sheetID, Tab: tab, State: ViewLive, Snapshot: snap}
		e.logger.Debug("Sheet fetched", "sheet_id", sheetID, "tab", tab, "rows", snap.SheetStats.RowCount)
	}

	if !e.current(key, seq) {
		return View{SheetID: sheetID, Tab: tab, State: ViewSuperseded, Err: err}
	}
	if e.publish(view) {
		e.announce(view)
	}
	span.SetAttributes(attribute.String("sheet.view_state", string(view.State)))
	return view
}

func (e *Engine) readFailed(ctx context.Context, sheetID, tab string, err error) View {
	cached, hasCache := e.cache.Load(ctx, sheetID, tab)

	kind := Classify(err)
	e.logger.Warn("Failed to fetch sheet", "sheet_id", sheetID, "tab", tab, "kind", kind, "error", err, "cached", hasCache)

	switch kind {
	case KindAuthorization:
		return View{SheetID: sheetID, Tab: tab, State: ViewSessionExpired, Snapshot: cached, Err: err}
	case KindRemoteClient, KindRemoteServer, KindThrottled, KindValidation:
		// Ответ получен, поэтому это ошибка, а не офлайн; кеш прикладывается для справки
		return View{SheetID: sheetID, Tab: tab, State: ViewError, Snapshot: cached, Err: err}
	default:
		if hasCache {
			return View{SheetID: sheetID, Tab: tab, State: ViewStale, Snapshot: cached, Err: err}
		}
		return View{SheetID: sheetID, Tab: tab, State: ViewUnavailable, Err: err}
	}
}

// readOfflineResponse обрабатывает ответ, выданный офлайн-кешем HTTP.
// Собственный кеш снапшотов приоритетнее, ответ в кеш снапшотов не сохраняется.
func (e *Engine) readOfflineResponse(ctx context.Context, sheetID, tab string, fromHTTPCache *models.SheetSnapshot) View {
	if cached, ok := e.cache.Load(ctx, sheetID, tab); ok {
		return View{SheetID: sheetID, Tab: tab, State: ViewStale, Snapshot: cached}
	}
	return View{SheetID: sheetID, Tab: tab, State: ViewStale, Snapshot: fromHTTPCache}
}

// announce отправляет уведомление, соответствующее состоянию представления
func (e *Engine) announce(view View) {
	notice := Notice{SheetID: view.SheetID, Tab: view.Tab}
	switch view.State {
	case ViewStale:
		notice.Kind = NoticeStale
		notice.Message = "showing cached data"
	case ViewSessionExpired:
		notice.Kind = NoticeSessionExpired
		notice.Message = "session expired, please log in again"
	case ViewUnavailable:
		notice.Kind = NoticeError
		notice.Message = "sheet unavailable: no connection and no cached data"
	case ViewError:
		notice.Kind = NoticeError
		notice.Message = view.Err.Error()
	default:
		return
	}
	e.notify(notice)
}

func validateTarget(sheetID, tab string) error {
	if err := validation.ValidateSheetID(sheetID); err != nil {
		return err
	}
	return validation.ValidateTab(tab)
}
