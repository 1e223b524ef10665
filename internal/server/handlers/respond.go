package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/sheetkeeper/internal/sheets"
	"github.com/iudanet/sheetkeeper/pkg/api"
)

// sendJSON отправляет JSON ответ
func sendJSON(w http.ResponseWriter, logger *slog.Logger, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// sendError отправляет JSON ответ с кодом ошибки шлюза
func sendError(w http.ResponseWriter, logger *slog.Logger, statusCode int, code, message string) {
	sendJSON(w, logger, api.ErrorResponse{Error: code, Message: message}, statusCode)
}

// SendError writes a gateway error document; used by middlewares.
func SendError(w http.ResponseWriter, logger *slog.Logger, statusCode int, code, message string) {
	sendError(w, logger, statusCode, code, message)
}

// sendUpstreamError пробрасывает статус и тело ошибки Google API.
// Остальные ошибки (сеть, декодирование) отдаются как 500 UNKNOWN_ERROR.
func sendUpstreamError(w http.ResponseWriter, logger *slog.Logger, code string, err error) {
	var upstream *sheets.UpstreamError
	if errors.As(err, &upstream) {
		sendJSON(w, logger, api.ErrorResponse{
			Error:   code,
			Status:  upstream.Status,
			Details: upstream.Body,
		}, upstream.Status)
		return
	}
	sendError(w, logger, http.StatusInternalServerError, api.CodeUnknownError, "")
}
