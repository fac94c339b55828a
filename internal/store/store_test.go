package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.HighScores("").Set(ctx, 80); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.HighScores("").Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != 80 {
		t.Errorf("high score after reopen = %d, want 80", got)
	}
}

func TestHighScoreRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.HighScores("react")

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get (empty): %v", err)
	}
	if got != 0 {
		t.Errorf("empty high score = %d, want 0", got)
	}

	for _, v := range []int{50, 120} {
		if err := repo.Set(ctx, v); err != nil {
			t.Fatalf("set %d: %v", v, err)
		}
	}
	got, _ = repo.Get(ctx)
	if got != 120 {
		t.Errorf("high score = %d, want 120", got)
	}

	// Keys are independent.
	other, _ := s.HighScores("go").Get(ctx)
	if other != 0 {
		t.Errorf("other key = %d, want 0", other)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	got, _ = repo.Get(ctx)
	if got != 0 {
		t.Errorf("after reset = %d, want 0", got)
	}
}

func TestSequenceMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := range 5 {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if i > 0 && seq != prev+1 {
			t.Errorf("sequence %d after %d", seq, prev)
		}
		prev = seq
	}
}

func TestSessionEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []SessionEventData{
		{SessionID: "a", Action: ActionStart, Source: "embedded", Questions: 15, MaxScore: 280},
		{SessionID: "a", Action: ActionFinish, Source: "embedded", Questions: 15, Answered: 15, Score: 200, MaxScore: 280, HighScore: 200, Reason: "completed", DurationSecs: 120},
		{SessionID: "b", Action: ActionStart, Source: "embedded", Questions: 15, MaxScore: 280},
		{SessionID: "b", Action: ActionFinish, Source: "embedded", Questions: 15, Answered: 4, Score: 40, MaxScore: 280, HighScore: 200, Reason: "manual", DurationSecs: 30},
	}
	for _, e := range events {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d events, want 4", len(all))
	}
	if all[0].SessionID != "b" || all[0].Action != ActionFinish {
		t.Errorf("newest event = %+v", all[0])
	}
	for i := 1; i < len(all); i++ {
		if all[i].Sequence >= all[i-1].Sequence {
			t.Errorf("events not ordered by sequence desc")
		}
	}

	finished, err := repo.FinishedSessions(ctx, 1)
	if err != nil {
		t.Fatalf("finished: %v", err)
	}
	if len(finished) != 1 || finished[0].Score != 40 || finished[0].Reason != "manual" {
		t.Errorf("finished = %+v", finished)
	}
	if time.Since(finished[0].Timestamp) > time.Minute {
		t.Errorf("timestamp = %v, want recent", finished[0].Timestamp)
	}

	after, err := repo.QuerySessionEvents(ctx, QueryOpts{After: all[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 {
		t.Errorf("events after %d = %d, want 1", all[1].Sequence, len(after))
	}
}
