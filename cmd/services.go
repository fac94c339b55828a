package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/quizzer/internal/config"
	"github.com/abhisek/quizzer/internal/highscore"
	"github.com/abhisek/quizzer/internal/history"
	"github.com/abhisek/quizzer/internal/logging"
	"github.com/abhisek/quizzer/internal/questions"
	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/store"
	"github.com/abhisek/quizzer/internal/telemetry"
)

// services is everything a quiz front end needs, built from config.
type services struct {
	cfg      config.App
	logger   *slog.Logger
	store    *store.Store
	redis    redis.UniversalClient // nil unless redis.addrs is set
	provider quiz.Provider
	machine  *quiz.Machine
	coord    *quiz.Coordinator
	history  *history.Recorder

	closers []io.Closer
}

// newServices opens the stores, builds the question provider and the
// machine. Log records go to cfg.Log.File, or logOut when that is empty.
// Extra observers are registered on the machine after the history recorder.
func newServices(ctx context.Context, cfg config.App, logOut io.Writer, observers ...quiz.Observer) (*services, error) {
	if logOut == nil {
		logOut = os.Stderr
	}
	logger, logCloser, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}, logOut)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	s := &services{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	if err := s.init(ctx, observers); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *services) init(ctx context.Context, observers []quiz.Observer) error {
	var err error
	if s.store, err = openStore(s.cfg); err != nil {
		return err
	}
	s.closers = append(s.closers, s.store)

	if s.redis, err = connectRedis(ctx, s.cfg, s.logger); err != nil {
		return err
	}
	if s.redis != nil {
		s.closers = append(s.closers, s.redis)
	}

	scores, err := highScoreStore(s.cfg, s.store, s.redis)
	if err != nil {
		return err
	}

	s.provider, err = questions.New(ctx, s.cfg.Questions, questions.Deps{
		Redis:       s.redis,
		RedisPrefix: s.cfg.Redis.Prefix,
		LLM:         s.cfg.LLM,
		Logger:      s.logger,
	})
	if err != nil {
		return fmt.Errorf("question source: %w", err)
	}

	s.history = history.NewRecorder(s.store.EventRepo(), s.cfg.Questions.Source, s.logger)
	opts := []quiz.Option{quiz.WithLogger(s.logger), quiz.WithObserver(s.history)}
	for _, o := range observers {
		opts = append(opts, quiz.WithObserver(o))
	}
	if s.machine, err = quiz.NewMachine(ctx, scores, opts...); err != nil {
		return fmt.Errorf("create quiz: %w", err)
	}
	s.coord = quiz.NewCoordinator(s.machine, quiz.WithCoordinatorLogger(s.logger))

	s.logger.InfoContext(ctx, "quizzer: ready",
		"source", s.cfg.Questions.Source,
		"highscore_backend", s.cfg.HighScore.Backend,
		"high_score", s.machine.Snapshot().HighScore)
	return nil
}

// startBackground runs the timer coordinator and the history writer until
// the returned func is called.
func (s *services) startBackground(ctx context.Context) func() {
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.coord.Run(gctx) })
	g.Go(func() error { return s.history.Run(gctx) })

	return func() {
		cancel()
		if err := g.Wait(); err != nil {
			s.logger.Error("quizzer: background task failed", "error", err)
		}
	}
}

// load fetches questions once, bounded by the configured request timeout.
func (s *services) load(ctx context.Context) error {
	if d := s.cfg.RequestTimeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	if err := s.machine.Load(ctx, s.provider); err != nil {
		s.logger.WarnContext(ctx, "quizzer: load questions failed", "error", err)
		return err
	}
	return nil
}

// Close releases resources in reverse order of acquisition.
func (s *services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			s.logger.Warn("quizzer: close failed", "error", err)
		}
	}
}

func openStore(cfg config.App) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// connectRedis returns nil when no address is configured.
func connectRedis(ctx context.Context, cfg config.App, logger *slog.Logger) (redis.UniversalClient, error) {
	if !cfg.Redis.Enabled() {
		return nil, nil
	}
	r, err := telemetry.Connect(ctx, &redis.UniversalOptions{
		Addrs:    cfg.Redis.Addrs,
		Password: cfg.Redis.Pass,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return r, nil
}

// highScoreStore picks the configured backend. rc may be nil unless the
// backend is redis, which config validation guarantees.
func highScoreStore(cfg config.App, st *store.Store, rc redis.UniversalClient) (quiz.HighScoreStore, error) {
	switch cfg.HighScore.Backend {
	case "", config.BackendSQLite:
		return st.HighScores(cfg.HighScore.Key), nil
	case config.BackendRedis:
		if rc == nil {
			return nil, fmt.Errorf("highscore backend redis: redis is not configured")
		}
		return highscore.NewRedis(rc, cfg.HighScore.Key), nil
	case config.BackendMemory:
		return highscore.NewMemory(0), nil
	}
	return nil, fmt.Errorf("unknown highscore backend: %q", cfg.HighScore.Backend)
}
