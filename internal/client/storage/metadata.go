package storage

import (
	"context"
	"time"
)

// ReplayRecord describes the outcome of the most recent queue replay pass.
type ReplayRecord struct {
	// FinishedAt is when the pass ended.
	FinishedAt time.Time `json:"finishedAt"`
	// LastSettledAt is when a pass last settled at least one operation.
	// Zero until the first operation reaches the sheet.
	LastSettledAt time.Time `json:"lastSettledAt"`
	Error         string    `json:"error,omitempty"`
	Attempted     int       `json:"attempted"`
	Settled       int       `json:"settled"`
	Remaining     int       `json:"remaining"`
	DeadLettered  int       `json:"deadLettered"`
}

// MetadataStorage stores bookkeeping about replay passes
type MetadataStorage interface {
	// SaveReplayRecord replaces the stored outcome with rec.
	// A pass that settled nothing keeps the previous LastSettledAt.
	SaveReplayRecord(ctx context.Context, rec ReplayRecord) error

	// GetReplayRecord returns the last stored outcome, or nil if no pass was recorded yet
	GetReplayRecord(ctx context.Context) (*ReplayRecord, error)
}
