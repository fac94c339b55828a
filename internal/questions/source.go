package questions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/quizzer/internal/llm"
	"github.com/abhisek/quizzer/internal/quiz"
)

// Source names.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourceRedis    = "redis"
	SourceLLM      = "llm"
)

// Config selects and configures the question source.
type Config struct {
	Source  string        `mapstructure:"source"`
	File    string        `mapstructure:"file"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Topic   string        `mapstructure:"topic"`
	Count   int           `mapstructure:"count"`
}

// Deps carries the clients some sources need. Unused fields may be nil.
type Deps struct {
	Redis       redis.UniversalClient
	RedisPrefix string
	LLM         llm.Config
	Logger      *slog.Logger
}

// New builds the provider named by cfg.Source.
func New(ctx context.Context, cfg Config, deps Deps) (quiz.Provider, error) {
	switch cfg.Source {
	case "", SourceEmbedded:
		return Embedded{}, nil

	case SourceFile:
		if cfg.File == "" {
			return nil, fmt.Errorf("questions.file is required for the file source")
		}
		return File{Path: cfg.File}, nil

	case SourceHTTP:
		if cfg.URL == "" {
			return nil, fmt.Errorf("questions.url is required for the http source")
		}
		return NewHTTP(cfg.URL, WithTimeout(cfg.Timeout)), nil

	case SourceRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("redis is not configured")
		}
		return NewRedisBank(deps.Redis, deps.RedisPrefix), nil

	case SourceLLM:
		lc := deps.LLM
		lc.Discover()
		p, err := llm.New(ctx, lc, deps.Logger)
		if err != nil {
			return nil, err
		}
		return withTimeout(NewGenerator(p, GeneratorConfig{Topic: cfg.Topic, Count: cfg.Count}), lc.Timeout), nil
	}
	return nil, fmt.Errorf("unknown question source: %q", cfg.Source)
}

// withTimeout bounds every load of p by d.
func withTimeout(p quiz.Provider, d time.Duration) quiz.Provider {
	if d <= 0 {
		return p
	}
	return quiz.ProviderFunc(func(ctx context.Context) ([]quiz.Question, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return p.Load(ctx)
	})
}
