package sync

import (
	"context"
	"errors"

	httpClient "github.com/iudanet/sheetkeeper/internal/client/api"
	"github.com/iudanet/sheetkeeper/internal/validation"
)

// ErrorKind класс ошибки, определяющий реакцию движка
type ErrorKind int

const (
	KindUnknown       ErrorKind = iota // непредвиденная ошибка, обрабатывается как серверная
	KindValidation                     // локальная ошибка входных данных
	KindAuthorization                  // сессия отсутствует или истекла
	KindTransport                      // шлюз недоступен
	KindRemoteClient                   // ответ 4xx
	KindRemoteServer                   // ответ 5xx
	KindThrottled                      // ответ 408 или 429, повтор позже без изменений
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindTransport:
		return "transport"
	case KindRemoteClient:
		return "remote_client"
	case KindRemoteServer:
		return "remote_server"
	case KindThrottled:
		return "throttled"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by the gateway client to an ErrorKind.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) {
		return KindValidation
	}
	if errors.Is(err, httpClient.ErrUnauthorized) {
		return KindAuthorization
	}

	var remoteErr *httpClient.RemoteError
	if errors.As(err, &remoteErr) {
		if remoteErr.Throttled() {
			return KindThrottled
		}
		if remoteErr.ServerFault() {
			return KindRemoteServer
		}
		return KindRemoteClient
	}

	var transportErr *httpClient.TransportError
	if errors.As(err, &transportErr) || errors.Is(err, context.DeadlineExceeded) {
		return KindTransport
	}

	return KindUnknown
}
