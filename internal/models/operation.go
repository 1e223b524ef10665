package models

import "time"

// OperationKind тип отложенной мутации
type OperationKind string

const (
	OperationUpdate OperationKind = "update" // перезапись строки по номеру
	OperationAppend OperationKind = "append" // добавление строки в конец вкладки
)

// OperationPayload содержит данные мутации.
// RowNumber используется только для update (1-based, заголовок - строка 1).
type OperationPayload struct {
	Values    []string `json:"values"`
	RowNumber int      `json:"rowNumber,omitempty"`
}

// PendingOperation представляет мутацию, которая еще не подтверждена удаленным сервисом.
// Порядок операций в очереди является порядком воспроизведения.
type PendingOperation struct {
	CreatedAt time.Time        `json:"createdAt"`
	ID        string           `json:"id"`
	SheetID   string           `json:"sheetId"`
	Tab       string           `json:"tab"`
	Kind      OperationKind    `json:"type"`
	LastError string           `json:"lastError,omitempty"` // LastError ошибка последней попытки воспроизведения
	Payload   OperationPayload `json:"payload"`
	Attempts  int              `json:"attempts,omitempty"` // Attempts количество неудачных попыток воспроизведения
}

// Targets reports whether the operation mutates the given (sheetID, tab).
func (op *PendingOperation) Targets(sheetID, tab string) bool {
	return op.SheetID == sheetID && op.Tab == tab
}
