package sync

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/iudanet/sheetkeeper/internal/models"
)

// ErrReplayStopped означает, что проход остановлен до обработки всей очереди
var ErrReplayStopped = errors.New("replay stopped")

// ProcessPendingOperations replays queued operations in insertion order.
// Without force the pass is skipped while offline. A call made while another pass is running returns at once.
func (e *Engine) ProcessPendingOperations(ctx context.Context, force bool) ReplayResult {
	if !force && !e.online.Online() {
		e.logger.Debug("Replay skipped, offline")
		return ReplayResult{Skipped: true}
	}
	if !e.replaying.CompareAndSwap(false, true) {
		e.logger.Debug("Replay already in progress")
		return ReplayResult{Coalesced: true}
	}
	defer e.replaying.Store(false)

	// Очередь перечитывается непосредственно перед проходом
	ops := e.queue.ReadAll(ctx)
	if len(ops) == 0 {
		return ReplayResult{}
	}

	ctx, span := e.tracer.Start(ctx, "sync.ProcessPendingOperations")
	defer span.End()

	e.logger.Info("Replaying pending operations", "count", len(ops), "forced", force)

	result := ReplayResult{}
	carried := make([]models.PendingOperation, 0, len(ops))
	dead := make(map[string]bool)
	var settled []models.PendingOperation

	for i, op := range ops {
		result.Attempted++
		err := e.send(ctx, op)
		if err == nil {
			settled = append(settled, op)
			e.logger.Debug("Operation settled", "op_id", op.ID, "type", op.Kind)
			continue
		}

		kind := Classify(err)
		op.LastError = err.Error()
		// Истекшая сессия и ограничение частоты не зависят от самой операции
		if kind != KindAuthorization && kind != KindThrottled {
			op.Attempts++
		}
		if e.exhausted(op) {
			dead[op.ID] = true
		}
		carried = append(carried, op)

		e.logger.Warn("Failed to replay operation", "op_id", op.ID, "type", op.Kind, "kind", kind, "attempts", op.Attempts, "error", err)

		if kind == KindRemoteClient || kind == KindValidation {
			continue
		}

		// Ошибка сервера, сети, сессии или ограничение частоты: остаток очереди переносится без изменений
		carried = append(carried, ops[i+1:]...)
		result.Err = fmt.Errorf("%w at operation %s: %w", ErrReplayStopped, op.ID, err)
		break
	}

	var deadOps []models.PendingOperation
	for _, op := range carried {
		if dead[op.ID] {
			deadOps = append(deadOps, op)
		}
	}
	if len(deadOps) > 0 {
		if e.queue.DeadLetter(ctx, deadOps) {
			result.DeadLettered = len(deadOps)
		} else {
			// Не удалось сохранить - операции остаются в очереди
			dead = nil
		}
	}

	remainder := make([]models.PendingOperation, 0, len(carried))
	for _, op := range carried {
		if !dead[op.ID] {
			remainder = append(remainder, op)
		}
	}

	if !e.queue.Replace(ctx, func(current []models.PendingOperation) []models.PendingOperation {
		next := mergeRemainder(ops, remainder, current)
		result.Remaining = len(next)
		return next
	}) {
		e.logger.Error("Failed to persist replay remainder", "remaining", len(remainder))
	}

	result.Settled = len(settled)
	span.SetAttributes(
		attribute.Int("replay.attempted", result.Attempted),
		attribute.Int("replay.settled", result.Settled),
		attribute.Int("replay.remaining", result.Remaining),
		attribute.Int("replay.dead_lettered", result.DeadLettered),
	)
	e.logger.Info("Replay finished", "settled", result.Settled, "remaining", result.Remaining, "dead_lettered", result.DeadLettered)

	e.announceReplay(ctx, result, settled)
	return result
}

// exhausted сообщает, достигла ли операция ограничений на воспроизведение
func (e *Engine) exhausted(op models.PendingOperation) bool {
	if e.opts.MaxAttempts > 0 && op.Attempts >= e.opts.MaxAttempts {
		return true
	}
	return e.opts.MaxAge > 0 && !op.CreatedAt.IsZero() && e.now().Sub(op.CreatedAt) > e.opts.MaxAge
}

// mergeRemainder строит новую очередь из остатка прохода и текущего содержимого хранилища.
// Операции остатка, удаленные из очереди во время прохода, не возвращаются;
// операции, добавленные во время прохода, сохраняются в порядке добавления после остатка.
func mergeRemainder(replayed, remainder, current []models.PendingOperation) []models.PendingOperation {
	known := make(map[string]bool, len(replayed))
	for _, op := range replayed {
		known[op.ID] = true
	}
	present := make(map[string]bool, len(current))
	for _, op := range current {
		present[op.ID] = true
	}

	next := make([]models.PendingOperation, 0, len(remainder)+len(current))
	for _, op := range remainder {
		if present[op.ID] {
			next = append(next, op)
		}
	}
	for _, op := range current {
		if !known[op.ID] {
			next = append(next, op)
		}
	}
	return next
}

func (e *Engine) announceReplay(ctx context.Context, result ReplayResult, settled []models.PendingOperation) {
	if result.Settled > 0 {
		e.notify(Notice{Kind: NoticeSynced, Message: fmt.Sprintf("synced %d pending change(s)", result.Settled), Count: result.Settled})
	}
	if result.DeadLettered > 0 {
		e.notify(Notice{Kind: NoticeError, Message: fmt.Sprintf("%d change(s) could not be synced and were set aside", result.DeadLettered), Count: result.DeadLettered})
	}
	if Classify(result.Err) == KindAuthorization {
		e.notify(Notice{Kind: NoticeSessionExpired, Message: "session expired, pending changes kept until you log in again", Count: result.Remaining})
	}

	active := e.Active()
	if active == "" {
		return
	}
	for _, op := range settled {
		if models.CacheKey(op.SheetID, op.Tab) == active {
			e.FetchAndRender(ctx, op.SheetID, op.Tab)
			return
		}
	}
}
