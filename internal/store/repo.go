package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Session event actions.
const (
	ActionStart  = "start"
	ActionFinish = "finish"
)

// SessionEventData captures one start or finish of a quiz run.
type SessionEventData struct {
	SessionID    string
	Action       string
	Source       string
	Questions    int
	Answered     int
	Score        int
	MaxScore     int
	HighScore    int
	Reason       string
	DurationSecs int
}

// SessionEvent is a stored SessionEventData with its ordering metadata.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// EventRepo provides append and query access to quiz history.
type EventRepo interface {
	// AppendSessionEvent records a run start or finish.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QuerySessionEvents returns events newest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)

	// FinishedSessions returns finish events newest first, at most limit (0 = all).
	FinishedSessions(ctx context.Context, limit int) ([]SessionEvent, error)
}
