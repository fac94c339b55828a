package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Question is a single multiple-choice item. It is immutable once loaded.
type Question struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
	Points        int      `json:"points"`
}

// Validate reports the first structural problem with q, or nil.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("question text is empty")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("need at least 2 options, got %d", len(q.Options))
	}
	if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
		return fmt.Errorf("correct option %d out of range [0, %d)", q.CorrectOption, len(q.Options))
	}
	if q.Points < 0 {
		return fmt.Errorf("points must be non-negative, got %d", q.Points)
	}
	return nil
}

// ValidateQuestions checks a whole question set. An empty set is invalid.
func ValidateQuestions(qs []Question) error {
	if len(qs) == 0 {
		return errors.New("no questions")
	}
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// Provider delivers the ordered question set for a session.
type Provider interface {
	Load(ctx context.Context) ([]Question, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) ([]Question, error)

func (f ProviderFunc) Load(ctx context.Context) ([]Question, error) {
	return f(ctx)
}
