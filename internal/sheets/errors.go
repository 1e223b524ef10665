package sheets

import (
	"encoding/json"
	"fmt"
)

// UpstreamError is a non-2xx answer from a Google API.
// Body holds the decoded error document, or {} when the body was not JSON.
type UpstreamError struct {
	Op     string
	Body   json.RawMessage
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream returned status %d", e.Op, e.Status)
}

// emptyDetails используется, когда тело ошибки Google не является JSON
var emptyDetails = json.RawMessage(`{}`)

func upstreamError(op string, status int, body []byte) *UpstreamError {
	details := emptyDetails
	if len(body) > 0 && json.Valid(body) {
		details = append(json.RawMessage(nil), body...)
	}
	return &UpstreamError{Op: op, Status: status, Body: details}
}
