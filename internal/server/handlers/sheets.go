package handlers

//go:generate moq -out upstream_mock.go . Upstream Pinger

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iudanet/sheetkeeper/internal/sheets"
	"github.com/iudanet/sheetkeeper/internal/validation"
	"github.com/iudanet/sheetkeeper/pkg/api"
)

const tracerName = "github.com/iudanet/sheetkeeper/internal/server/handlers"

// Upstream описывает обращения шлюза к Google Sheets и Drive
type Upstream interface {
	GetSheet(ctx context.Context, accessToken, sheetID, tab string) (*api.SheetResponse, error)
	UpdateRow(ctx context.Context, accessToken, sheetID, tab string, rowNumber int, values []string) error
	AppendRow(ctx context.Context, accessToken, sheetID, tab string, values []string) error
	GetMetadata(ctx context.Context, accessToken, sheetID string) (*sheets.Metadata, error)
	ListSpreadsheets(ctx context.Context, accessToken string) ([]api.SpreadsheetFile, error)
}

// SheetsHandler проксирует чтение и запись строк в Google Sheets
type SheetsHandler struct {
	logger   *slog.Logger
	upstream Upstream
	schemas  *Schemas
	tracer   trace.Tracer
}

// NewSheetsHandler создает новый handler для работы с таблицами
func NewSheetsHandler(logger *slog.Logger, upstream Upstream, schemas *Schemas) *SheetsHandler {
	return &SheetsHandler{
		logger:   logger,
		upstream: upstream,
		schemas:  schemas,
		tracer:   otel.Tracer(tracerName),
	}
}

// session извлекает сессию, установленную middleware.
// Без сессии отвечает 401 и возвращает false.
func (h *SheetsHandler) session(w http.ResponseWriter, r *http.Request) (*SessionClaims, bool) {
	claims, ok := GetSession(r.Context())
	if !ok {
		sendError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "")
		return nil, false
	}
	return claims, true
}

// sheetID читает и проверяет идентификатор таблицы из пути
func (h *SheetsHandler) sheetID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if err := validation.ValidateSheetID(id); err != nil {
		sendError(w, h.logger, http.StatusBadRequest, api.CodeInvalidPayload, err.Error())
		return "", false
	}
	return id, true
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	var upstream *sheets.UpstreamError
	if errors.As(err, &upstream) {
		span.SetAttributes(attribute.Int("upstream.status", upstream.Status))
	}
	span.End()
}

// GetSheet обрабатывает GET /api/sheets/{id}?tab=
func (h *SheetsHandler) GetSheet(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.session(w, r)
	if !ok {
		return
	}
	sheetID, ok := h.sheetID(w, r)
	if !ok {
		return
	}

	tab := r.URL.Query().Get("tab")
	if tab == "" {
		sendError(w, h.logger, http.StatusBadRequest, api.CodeTabRequired, "")
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "handlers.GetSheet", trace.WithAttributes(
		attribute.String("sheet.id", sheetID),
		attribute.String("sheet.tab", tab),
	))
	resp, err := h.upstream.GetSheet(ctx, claims.AccessToken, sheetID, tab)
	finishSpan(span, err)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to fetch sheet", "sheet_id", sheetID, "tab", tab, "error", err)
		sendUpstreamError(w, h.logger, api.CodeFailedToFetchSheet, err)
		return
	}

	resp.Success = true
	sendJSON(w, h.logger, resp, http.StatusOK)
}

// UpdateRow обрабатывает PUT /api/sheets/{id}
func (h *SheetsHandler) UpdateRow(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.session(w, r)
	if !ok {
		return
	}
	sheetID, ok := h.sheetID(w, r)
	if !ok {
		return
	}

	var req api.UpdateRowRequest
	if err := decodeValid(r, h.schemas.update, &req); err != nil {
		sendError(w, h.logger, http.StatusBadRequest, api.CodeInvalidPayload, err.Error())
		return
	}
	if err := validation.ValidateUpdate(req.Tab, req.RowNumber, req.Values); err != nil {
		sendError(w, h.logger, http.StatusBadRequest, api.CodeInvalidPayload, err.Error())
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "handlers.UpdateRow", trace.WithAttributes(
		attribute.String("sheet.id", sheetID),
		attribute.String("sheet.tab", req.Tab),
		attribute.Int("sheet.row", req.RowNumber),
	))
	err := h.upstream.UpdateRow(ctx, claims.AccessToken, sheetID, req.Tab, req.RowNumber, req.Values)
	finishSpan(span, err)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to update row", "sheet_id", sheetID, "tab", req.Tab, "row", req.RowNumber, "error", err)
		sendUpstreamError(w, h.logger, api.CodeFailedToUpdate, err)
		return
	}

	h.logger.InfoContext(ctx, "Row updated", "sheet_id", sheetID, "tab", req.Tab, "row", req.RowNumber)
	sendJSON(w, h.logger, api.SuccessResponse{Success: true}, http.StatusOK)
}

// AppendRow обрабатывает POST /api/sheets/{id}
func (h *SheetsHandler) AppendRow(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.session(w, r)
	if !ok {
		return
	}
	sheetID, ok := h.sheetID(w, r)
	if !ok {
		return
	}

	var req api.AppendRowRequest
	if err := decodeValid(r, h.schemas.append, &req); err != nil {
		sendError(w, h.logger, http.StatusBadRequest, api.CodeInvalidPayload, err.Error())
		return
	}
	if err := validation.ValidateAppend(req.Tab, req.Values); err != nil {
		sendError(w, h.logger, http.StatusBadRequest, api.CodeInvalidPayload, err.Error())
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "handlers.AppendRow", trace.WithAttributes(
		attribute.String("sheet.id", sheetID),
		attribute.String("sheet.tab", req.Tab),
	))
	err := h.upstream.AppendRow(ctx, claims.AccessToken, sheetID, req.Tab, req.Values)
	finishSpan(span, err)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to append row", "sheet_id", sheetID, "tab", req.Tab, "error", err)
		sendUpstreamError(w, h.logger, api.CodeFailedToAppend, err)
		return
	}

	h.logger.InfoContext(ctx, "Row appended", "sheet_id", sheetID, "tab", req.Tab)
	sendJSON(w, h.logger, api.SuccessResponse{Success: true}, http.StatusOK)
}

// ListTabs обрабатывает GET /api/sheets/{id}/tabs
func (h *SheetsHandler) ListTabs(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.session(w, r)
	if !ok {
		return
	}
	sheetID, ok := h.sheetID(w, r)
	if !ok {
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "handlers.ListTabs", trace.WithAttributes(attribute.String("sheet.id", sheetID)))
	meta, err := h.upstream.GetMetadata(ctx, claims.AccessToken, sheetID)
	finishSpan(span, err)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to fetch metadata", "sheet_id", sheetID, "error", err)
		sendUpstreamError(w, h.logger, api.CodeFailedToFetchSheet, err)
		return
	}

	tabs := meta.Tabs
	if tabs == nil {
		tabs = []string{}
	}
	sendJSON(w, h.logger, api.TabsResponse{Title: meta.Title, Tabs: tabs, Success: true}, http.StatusOK)
}

// ListSpreadsheets обрабатывает GET /api/sheets
func (h *SheetsHandler) ListSpreadsheets(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.session(w, r)
	if !ok {
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "handlers.ListSpreadsheets")
	files, err := h.upstream.ListSpreadsheets(ctx, claims.AccessToken)
	finishSpan(span, err)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to list spreadsheets", "error", err)
		sendUpstreamError(w, h.logger, api.CodeFailedToList, err)
		return
	}

	if files == nil {
		files = []api.SpreadsheetFile{}
	}
	sendJSON(w, h.logger, api.SpreadsheetListResponse{Files: files, Success: true}, http.StatusOK)
}
