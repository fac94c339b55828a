package config

import (
	"fmt"
	"time"

	"github.com/abhisek/quizzer/internal/llm"
	"github.com/abhisek/quizzer/internal/questions"
)

// High-score backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// App is the full application configuration.
type App struct {
	// DB is the SQLite database path. Empty resolves the default path.
	DB string `mapstructure:"db"`

	Questions questions.Config `mapstructure:"questions"`
	HighScore HighScore        `mapstructure:"highscore"`
	Redis     Redis            `mapstructure:"redis"`
	LLM       llm.Config       `mapstructure:"llm"`
	Server    Server           `mapstructure:"server"`
	Log       Log              `mapstructure:"log"`
}

type HighScore struct {
	Backend string `mapstructure:"backend"`
	Key     string `mapstructure:"key"`
}

type Redis struct {
	Addrs  []string `mapstructure:"addrs"`
	Pass   string   `mapstructure:"pass"`
	DB     int      `mapstructure:"db"`
	Prefix string   `mapstructure:"prefix"`
}

// Enabled reports whether any Redis address is configured.
func (r Redis) Enabled() bool {
	return len(r.Addrs) > 0
}

type Server struct {
	Addr string `mapstructure:"addr"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Default returns the built-in defaults.
func Default() App {
	return App{
		Questions: questions.Config{
			Source:  questions.SourceEmbedded,
			Timeout: questions.DefaultHTTPTimeout,
			Topic:   "React",
			Count:   10,
		},
		HighScore: HighScore{Backend: BackendSQLite},
		Redis:     Redis{Addrs: []string{}, Prefix: questions.DefaultRedisPrefix},
		LLM:       llm.DefaultConfig(),
		Server:    Server{Addr: ":8080"},
		Log:       Log{Level: "info", Format: "text"},
	}
}

// LoadApp reads .env, then file and the environment over the defaults.
func LoadApp(file string) (App, error) {
	c := Default()
	if err := LoadDotEnv(); err != nil {
		return c, err
	}
	if err := Load(file, &c); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks cross-field constraints.
func (c App) Validate() error {
	switch c.HighScore.Backend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("highscore.backend redis needs redis.addrs")
		}
	default:
		return fmt.Errorf("unknown highscore.backend: %q", c.HighScore.Backend)
	}
	if c.Questions.Source == questions.SourceRedis && !c.Redis.Enabled() {
		return fmt.Errorf("questions.source redis needs redis.addrs")
	}
	if c.Questions.Timeout < 0 || c.LLM.Timeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// RequestTimeout bounds one question load for the configured source.
func (c App) RequestTimeout() time.Duration {
	if c.Questions.Source == questions.SourceLLM {
		return c.LLM.Timeout
	}
	return c.Questions.Timeout
}
