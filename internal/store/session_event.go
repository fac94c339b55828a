package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo backed by the SQL driver and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var sessionEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "action", "source",
	"questions", "answered", "score", "max_score", "high_score", "reason", "duration_secs",
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert("session_events").
		Columns(sessionEventColumns[1:]...).
		Values(
			seqNum,
			time.Now().UnixMilli(),
			data.SessionID,
			data.Action,
			data.Source,
			data.Questions,
			data.Answered,
			data.Score,
			data.MaxScore,
			data.HighScore,
			data.Reason,
			data.DurationSecs,
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	return r.query(ctx, opts, nil)
}

func (r *eventRepo) FinishedSessions(ctx context.Context, limit int) ([]SessionEvent, error) {
	return r.query(ctx, QueryOpts{Limit: limit}, entsql.EQ("action", ActionFinish))
}

func (r *eventRepo) query(ctx context.Context, opts QueryOpts, extra *entsql.Predicate) ([]SessionEvent, error) {
	var preds []*entsql.Predicate
	if extra != nil {
		preds = append(preds, extra)
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UnixMilli()))
	}

	sel := entsql.Dialect(dialect.SQLite).
		Select(sessionEventColumns...).
		From(entsql.Table("session_events")).
		OrderBy(entsql.Desc("sequence"))
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var (
			ev SessionEvent
			ts int64
		)
		err := rows.Scan(
			&ev.ID, &ev.Sequence, &ts, &ev.SessionID, &ev.Action, &ev.Source,
			&ev.Questions, &ev.Answered, &ev.Score, &ev.MaxScore, &ev.HighScore,
			&ev.Reason, &ev.DurationSecs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(ts)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	return events, nil
}
