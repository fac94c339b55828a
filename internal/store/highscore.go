package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// DefaultHighScoreKey names the high-score cell when none is configured.
const DefaultHighScoreKey = "quizzer:highscore"

// HighScoreRepo is a single named high-score cell in the high_scores table.
type HighScoreRepo struct {
	drv *entsql.Driver
	key string
}

// Get returns the stored value, or 0 when the cell has never been written.
func (r *HighScoreRepo) Get(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table("high_scores")).
		Where(entsql.EQ("name", r.key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("query high score: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("query high score: %w", err)
		}
		return 0, nil
	}

	var v int
	if err := rows.Scan(&v); err != nil {
		return 0, fmt.Errorf("scan high score: %w", err)
	}
	return v, nil
}

// Set upserts the cell.
func (r *HighScoreRepo) Set(ctx context.Context, value int) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert("high_scores").
		Columns("name", "value", "updated_at").
		Values(r.key, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	return nil
}

// Reset removes the cell so Get reports 0 again.
func (r *HighScoreRepo) Reset(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete("high_scores").
		Where(entsql.EQ("name", r.key)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("reset high score: %w", err)
	}
	return nil
}
