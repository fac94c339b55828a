// Package history records quiz runs into the event store.
package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/store"
)

const queueSize = 64

// ReasonAbandoned marks a run that was cut short by a reload.
const ReasonAbandoned = "abandoned"

// Recorder observes a quiz machine and appends a start event when a run
// begins and a finish event when it ends. Writes happen on the goroutine
// running Run, never on the dispatching goroutine.
type Recorder struct {
	repo   store.EventRepo
	source string
	logger *slog.Logger
	now    func() time.Time
	queue  chan store.SessionEventData

	// Owned by Observe, which the machine serializes.
	sessionID string
	startedAt time.Time
}

// NewRecorder creates a recorder writing to repo. source names the question
// source and is stored with every event.
func NewRecorder(repo store.EventRepo, source string, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		repo:   repo,
		source: source,
		logger: logger,
		now:    time.Now,
		queue:  make(chan store.SessionEventData, queueSize),
	}
}

// Observe implements quiz.Observer.
func (r *Recorder) Observe(_ quiz.Event, prev, next quiz.Session, _ error) {
	switch {
	case prev.Status != quiz.StatusActive && next.Status == quiz.StatusActive:
		r.sessionID = uuid.NewString()
		r.startedAt = r.now()
		r.enqueue(store.SessionEventData{
			SessionID: r.sessionID,
			Action:    store.ActionStart,
			Source:    r.source,
			Questions: next.NumQuestions(),
			MaxScore:  next.MaxPoints(),
			HighScore: next.HighScore,
		})

	case prev.Status == quiz.StatusActive && next.Status != quiz.StatusActive:
		reason := string(next.EndReason)
		if next.Status != quiz.StatusFinished {
			reason = ReasonAbandoned
		}
		r.enqueue(store.SessionEventData{
			SessionID:    r.sessionID,
			Action:       store.ActionFinish,
			Source:       r.source,
			Questions:    prev.NumQuestions(),
			Answered:     prev.Progress(),
			Score:        prev.Score,
			MaxScore:     prev.MaxPoints(),
			HighScore:    max(next.HighScore, prev.HighScore),
			Reason:       reason,
			DurationSecs: int(r.now().Sub(r.startedAt).Seconds()),
		})
	}
}

func (r *Recorder) enqueue(data store.SessionEventData) {
	select {
	case r.queue <- data:
	default:
		r.logger.Warn("history: queue full, event dropped", "action", data.Action, "session_id", data.SessionID)
	}
}

// Run writes queued events until ctx is done, then flushes what is left.
// Writes are not cancelled by ctx so a finish event is not lost on exit.
func (r *Recorder) Run(ctx context.Context) error {
	writeCtx := context.WithoutCancel(ctx)
	for {
		select {
		case data := <-r.queue:
			r.write(writeCtx, data)
		case <-ctx.Done():
			r.flush(writeCtx)
			return nil
		}
	}
}

func (r *Recorder) flush(ctx context.Context) {
	for {
		select {
		case data := <-r.queue:
			r.write(ctx, data)
		default:
			return
		}
	}
}

func (r *Recorder) write(ctx context.Context, data store.SessionEventData) {
	if err := r.repo.AppendSessionEvent(ctx, data); err != nil {
		r.logger.ErrorContext(ctx, "history: append session event failed",
			"action", data.Action, "session_id", data.SessionID, "error", err)
		return
	}
	r.logger.DebugContext(ctx, "history: session event recorded",
		"action", data.Action, "session_id", data.SessionID, "score", data.Score)
}
