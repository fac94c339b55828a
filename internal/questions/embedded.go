package questions

import (
	"context"
	_ "embed"

	"github.com/abhisek/quizzer/internal/quiz"
)

//go:embed data/react.json
var reactBank []byte

// Embedded serves the built-in React quiz.
type Embedded struct{}

func (Embedded) Load(context.Context) ([]quiz.Question, error) {
	return Parse(reactBank)
}
