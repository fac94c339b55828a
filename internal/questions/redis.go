package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/quizzer/internal/quiz"
)

// DefaultRedisPrefix namespaces bank keys when none is configured.
const DefaultRedisPrefix = "quiz"

// ErrEmptyBank is returned when the Redis bank holds no questions.
var ErrEmptyBank = errors.New("question bank is empty")

// RedisBank stores each question as JSON under <prefix>:question:<n> and
// keeps their order in the list <prefix>:question_ids.
type RedisBank struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisBank returns a bank using client. An empty prefix uses DefaultRedisPrefix.
func NewRedisBank(client redis.UniversalClient, prefix string) *RedisBank {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisBank{client: client, prefix: prefix}
}

func (b *RedisBank) idsKey() string {
	return b.prefix + ":question_ids"
}

func (b *RedisBank) questionKey(id string) string {
	return fmt.Sprintf("%s:question:%s", b.prefix, id)
}

// Import replaces the bank with qs in a single transaction.
func (b *RedisBank) Import(ctx context.Context, qs []quiz.Question) error {
	if err := quiz.ValidateQuestions(qs); err != nil {
		return fmt.Errorf("import questions: %w", err)
	}

	old, err := b.client.LRange(ctx, b.idsKey(), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("import questions: list ids: %w", err)
	}

	_, err = b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range old {
			pipe.Del(ctx, b.questionKey(id))
		}
		pipe.Del(ctx, b.idsKey())

		for i, q := range qs {
			data, err := json.Marshal(q)
			if err != nil {
				return fmt.Errorf("marshal question %d: %w", i, err)
			}
			id := strconv.Itoa(i + 1)
			pipe.Set(ctx, b.questionKey(id), data, 0)
			pipe.RPush(ctx, b.idsKey(), id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("import questions: %w", err)
	}
	return nil
}

// Load returns the questions in import order.
func (b *RedisBank) Load(ctx context.Context) ([]quiz.Question, error) {
	ids, err := b.client.LRange(ctx, b.idsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load questions: list ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrEmptyBank
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = b.questionKey(id)
	}
	vals, err := b.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	qs := make([]quiz.Question, 0, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("load questions: question %s missing", ids[i])
		}
		var q quiz.Question
		if err := json.Unmarshal([]byte(s), &q); err != nil {
			return nil, fmt.Errorf("load questions: question %s: %w", ids[i], err)
		}
		qs = append(qs, q)
	}
	return qs, nil
}

// Count returns the number of questions in the bank.
func (b *RedisBank) Count(ctx context.Context) (int, error) {
	n, err := b.client.LLen(ctx, b.idsKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return int(n), nil
}
