package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized означает отсутствующую, просроченную или отклоненную шлюзом сессию
var ErrUnauthorized = errors.New("session is missing or expired")

// TransportError is a failure to reach the gateway: no route, DNS, refused connection, timeout.
type TransportError struct {
	Err error
	Op  string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: gateway unreachable: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError is a non-2xx gateway response other than 401.
type RemoteError struct {
	Details json.RawMessage
	Code    string
	Message string
	Op      string
	Status  int
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("%s: gateway returned %d", e.Op, e.Status)
	if e.Code != "" {
		msg += " " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// ServerFault reports whether the failure is on the server side (5xx) and may succeed later.
func (e *RemoteError) ServerFault() bool {
	return e.Status >= 500
}

// Throttled reports whether the request was refused for being too early (408, 429).
// The same request may succeed unchanged later.
func (e *RemoteError) Throttled() bool {
	return e.Status == http.StatusRequestTimeout || e.Status == http.StatusTooManyRequests
}
