package questions

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/quizzer/internal/quiz"
)

// File reads a bank file from disk on every load.
type File struct {
	Path string
}

func (f File) Load(context.Context) ([]quiz.Question, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	qs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return qs, nil
}
