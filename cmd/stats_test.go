package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizzer/internal/config"
	"github.com/abhisek/quizzer/internal/highscore"
	"github.com/abhisek/quizzer/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "quizzer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestPrintStats(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	scores := st.HighScores("")
	require.NoError(t, scores.Set(ctx, 30))

	events := st.EventRepo()
	require.NoError(t, events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: "a", Action: store.ActionStart, Source: "embedded", Questions: 3, MaxScore: 40,
	}))
	require.NoError(t, events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: "a", Action: store.ActionFinish, Source: "embedded",
		Questions: 3, Answered: 3, Score: 30, MaxScore: 40, HighScore: 30,
		Reason: "completed", DurationSecs: 42,
	}))

	var out bytes.Buffer
	require.NoError(t, printStats(ctx, &out, scores, events, 10))

	got := out.String()
	assert.Contains(t, got, "High score: 30")
	assert.Contains(t, got, "30/40")
	assert.Contains(t, got, "3/3")
	assert.Contains(t, got, "75%")
	assert.Contains(t, got, "completed")
	assert.Contains(t, got, "00:42")
}

func TestPrintStats_Empty(t *testing.T) {
	st := openTestStore(t)

	var out bytes.Buffer
	require.NoError(t, printStats(context.Background(), &out, highscore.NewMemory(0), st.EventRepo(), 10))
	assert.Contains(t, out.String(), "High score: 0")
	assert.Contains(t, out.String(), "No finished runs yet.")
}

func TestHighScoreStore_Backends(t *testing.T) {
	st := openTestStore(t)
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Redis.Addrs = []string{mr.Addr()}
	rc, err := connectRedis(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	defer rc.Close()

	cfg.HighScore.Backend = config.BackendSQLite
	s, err := highScoreStore(cfg, st, nil)
	require.NoError(t, err)
	assert.IsType(t, &store.HighScoreRepo{}, s)

	cfg.HighScore.Backend = config.BackendRedis
	s, err = highScoreStore(cfg, st, rc)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), 55))
	got, err := mr.Get(highscore.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "55", got)
	_, isResetter := s.(resetter)
	assert.True(t, isResetter)

	_, err = highScoreStore(cfg, st, nil)
	assert.Error(t, err)

	cfg.HighScore.Backend = config.BackendMemory
	s, err = highScoreStore(cfg, st, nil)
	require.NoError(t, err)
	_, isResetter = s.(resetter)
	assert.False(t, isResetter)

	cfg.HighScore.Backend = "etcd"
	_, err = highScoreStore(cfg, st, nil)
	assert.Error(t, err)
}

func TestConnectRedis_Disabled(t *testing.T) {
	rc, err := connectRedis(context.Background(), config.Default(), discardLogger())
	require.NoError(t, err)
	assert.Nil(t, rc)
}

func TestPrintQuestions(t *testing.T) {
	var out bytes.Buffer
	printQuestions(&out, playQuestions())
	got := out.String()
	assert.Contains(t, got, " 1. [10] Q1")
	assert.Contains(t, got, "* 2) b")
	assert.Contains(t, got, "3 questions, 40 points")
}
