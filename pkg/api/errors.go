package api

import "encoding/json"

// Коды ошибок шлюза
const (
	CodeTabRequired        = "TAB_REQUIRED"
	CodeInvalidPayload     = "INVALID_PAYLOAD"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeFailedToFetchSheet = "FAILED_TO_FETCH_SHEET"
	CodeFailedToUpdate     = "FAILED_TO_UPDATE"
	CodeFailedToAppend     = "FAILED_TO_APPEND"
	CodeFailedToList       = "FAILED_TO_LIST"
	CodeRateLimited        = "RATE_LIMITED"
	CodeUnknownError       = "UNKNOWN_ERROR"
)

// ErrorResponse представляет ответ с ошибкой.
// Status и Details заполняются, когда ошибку вернул Google API.
type ErrorResponse struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details,omitempty"`
	Message string          `json:"message,omitempty"`
	Status  int             `json:"status,omitempty"`
	Success bool            `json:"success"`
}
