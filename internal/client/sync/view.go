package sync

import "github.com/iudanet/sheetkeeper/internal/models"

// ViewState описывает происхождение и достоверность отображаемых данных
type ViewState string

const (
	ViewLive           ViewState = "live"            // данные только что получены от шлюза
	ViewStale          ViewState = "stale"           // данные из кеша, шлюз недоступен
	ViewPending        ViewState = "pending"         // данные с примененными локально мутациями
	ViewUnavailable    ViewState = "unavailable"     // данных нет ни в сети, ни в кеше
	ViewError          ViewState = "error"           // шлюз вернул ошибку
	ViewSessionExpired ViewState = "session_expired" // требуется повторный вход
	ViewSuperseded     ViewState = "superseded"      // результат отброшен более новым запросом
)

// View is what the engine hands to the renderer for one (sheetID, tab).
// Snapshot may be nil for unavailable, error and session_expired views.
type View struct {
	Snapshot *models.SheetSnapshot
	Err      error
	SheetID  string
	Tab      string
	State    ViewState
}

// Degraded reports whether the view does not show authoritative data.
func (v View) Degraded() bool {
	return v.State != ViewLive
}

// NoticeKind тип пользовательского уведомления
type NoticeKind string

const (
	NoticeSynced         NoticeKind = "synced"
	NoticeQueued         NoticeKind = "queued"
	NoticeStale          NoticeKind = "stale"
	NoticeSessionExpired NoticeKind = "session_expired"
	NoticeError          NoticeKind = "error"
)

// Notice is a one-line user-facing message.
type Notice struct {
	Kind    NoticeKind
	Message string
	SheetID string
	Tab     string
	Count   int
}

// WriteResult исход записи строки
type WriteResult string

const (
	WriteApplied  WriteResult = "applied"  // шлюз подтвердил запись
	WriteQueued   WriteResult = "queued"   // запись поставлена в очередь и применена локально
	WriteRejected WriteResult = "rejected" // запись отклонена и не поставлена в очередь
)

// ReplayResult summarizes one replay pass.
type ReplayResult struct {
	Err          error // ошибка, остановившая проход
	Attempted    int
	Settled      int
	Remaining    int
	DeadLettered int
	Skipped      bool // офлайн, проход не запускался
	Coalesced    bool // проход уже выполняется
}
