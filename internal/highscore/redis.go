// Package highscore provides HighScoreStore implementations that live
// outside the SQLite store.
package highscore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the key used when none is configured.
const DefaultKey = "quizzer:highscore"

// Redis stores the high score as a plain integer string under a single key.
type Redis struct {
	client redis.UniversalClient
	key    string
}

// NewRedis returns a store backed by client. An empty key uses DefaultKey.
func NewRedis(client redis.UniversalClient, key string) *Redis {
	if key == "" {
		key = DefaultKey
	}
	return &Redis{client: client, key: key}
}

// Get returns the stored value, 0 if the key does not exist.
func (r *Redis) Get(ctx context.Context) (int, error) {
	v, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get high score: %w", err)
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse high score %q: %w", v, err)
	}
	return n, nil
}

func (r *Redis) Set(ctx context.Context, value int) error {
	if err := r.client.Set(ctx, r.key, value, 0).Err(); err != nil {
		return fmt.Errorf("set high score: %w", err)
	}
	return nil
}

// Reset deletes the stored value.
func (r *Redis) Reset(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("reset high score: %w", err)
	}
	return nil
}
