package sync

import (
	"context"

	"github.com/iudanet/sheetkeeper/internal/models"
	pkgapi "github.com/iudanet/sheetkeeper/pkg/api"
)

//go:generate moq -out remote_mock.go . RemoteAPI
//go:generate moq -out deps_mock.go . Connectivity Renderer

// RemoteAPI is the subset of the gateway client used by the engine.
type RemoteAPI interface {
	GetSheet(ctx context.Context, sheetID, tab string) (*pkgapi.SheetResponse, error)
	UpdateRow(ctx context.Context, sheetID string, req pkgapi.UpdateRowRequest) error
	AppendRow(ctx context.Context, sheetID string, req pkgapi.AppendRowRequest) error
}

// SnapshotStore хранит последнее известное состояние вкладок (cache.Cache)
type SnapshotStore interface {
	Save(ctx context.Context, snapshot *models.SheetSnapshot)
	Load(ctx context.Context, sheetID, tab string) (*models.SheetSnapshot, bool)
}

// OperationQueue хранит отложенные мутации (queue.Queue)
type OperationQueue interface {
	Enqueue(ctx context.Context, op models.PendingOperation) bool
	ReadAll(ctx context.Context) []models.PendingOperation
	Replace(ctx context.Context, fn func(current []models.PendingOperation) []models.PendingOperation) bool
	DeadLetter(ctx context.Context, ops []models.PendingOperation) bool
}

// Connectivity reports the last known reachability of the gateway.
type Connectivity interface {
	Online() bool
}

// Renderer получает представления активной вкладки и уведомления
type Renderer interface {
	Render(view View)
	Notify(notice Notice)
}
