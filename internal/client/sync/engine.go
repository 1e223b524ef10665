// Package sync reconciles the local snapshot cache and pending-operation queue with the gateway.
package sync

import (
	"log/slog"
	gosync "sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/iudanet/sheetkeeper/internal/models"
)

const tracerName = "github.com/iudanet/sheetkeeper/internal/client/sync"

// Options настраивают движок. MaxAttempts и MaxAge ограничивают повторное воспроизведение
// неудачных операций, нулевое значение отключает соответствующее ограничение.
type Options struct {
	Now         func() time.Time // по умолчанию time.Now
	NewID       func() string    // по умолчанию uuid.NewString
	MaxAttempts int
	MaxAge      time.Duration
}

// Engine implements the read, write and replay paths.
// Network calls are made outside of mu; mu guards the active key, request sequence numbers and in-memory views.
type Engine struct {
	remote   RemoteAPI
	cache    SnapshotStore
	queue    OperationQueue
	online   Connectivity
	renderer Renderer
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time
	newID    func() string
	opts     Options

	mu     gosync.Mutex
	active string                           // ключ вкладки, выбранной последней
	issued map[string]uint64                // последний выданный номер запроса по ключу
	views  map[string]*models.SheetSnapshot // последнее отображенное состояние по ключу

	replaying atomic.Bool
}

// New creates an engine
func New(remote RemoteAPI, cache SnapshotStore, queue OperationQueue, online Connectivity, renderer Renderer, logger *slog.Logger, opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Engine{
		remote:   remote,
		cache:    cache,
		queue:    queue,
		online:   online,
		renderer: renderer,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
		now:      opts.Now,
		newID:    opts.NewID,
		opts:     opts,
		issued:   make(map[string]uint64),
		views:    make(map[string]*models.SheetSnapshot),
	}
}

// Active returns the (sheetID, tab) key selected last, or "" when nothing was selected.
func (e *Engine) Active() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// begin выдает следующий номер запроса для ключа и делает ключ активным
func (e *Engine) begin(key string) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.issued[key]++
	e.active = key
	return e.issued[key]
}

// activate делает ключ активным без выдачи номера запроса
func (e *Engine) activate(key string) {
	e.mu.Lock()
	e.active = key
	e.mu.Unlock()
}

func (e *Engine) current(key string, seq uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.issued[key] == seq
}

// view returns a copy of the in-memory view for key
func (e *Engine) view(key string) (*models.SheetSnapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, ok := e.views[key]
	if !ok {
		return nil, false
	}
	return snap.Clone(), true
}

// publish запоминает представление и отображает его, если ключ активен.
// Возвращает false, если ключ не активен.
func (e *Engine) publish(view View) bool {
	key := models.CacheKey(view.SheetID, view.Tab)

	e.mu.Lock()
	if view.Snapshot != nil {
		e.views[key] = view.Snapshot.Clone()
	}
	active := e.active == key
	e.mu.Unlock()

	if active {
		e.renderer.Render(view)
	}
	return active
}

func (e *Engine) notify(notice Notice) {
	e.renderer.Notify(notice)
}
