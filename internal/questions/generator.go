package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/quizzer/internal/llm"
	"github.com/abhisek/quizzer/internal/quiz"
)

// quizSchema is the structured output requested from the model.
var quizSchema = llm.MustSchema("quiz", "A multiple-choice quiz with four options per question", map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question": map[string]any{
						"type":        "string",
						"description": "The question text, one sentence, plain text",
					},
					"options": map[string]any{
						"type":        "array",
						"minItems":    4,
						"maxItems":    4,
						"items":       map[string]any{"type": "string"},
						"description": "Exactly four answer options; only one is correct",
					},
					"correct_option": map[string]any{
						"type":        "integer",
						"minimum":     0,
						"maximum":     3,
						"description": "Zero-based index of the correct option",
					},
					"points": map[string]any{
						"type":        "integer",
						"enum":        []any{10, 20, 30},
						"description": "10 for easy, 20 for medium, 30 for hard questions",
					},
				},
				"required":             []any{"question", "options", "correct_option", "points"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"questions"},
	"additionalProperties": false,
})

const systemPrompt = `You write multiple-choice quizzes for software developers.
Each question has exactly four plausible options and exactly one correct answer.
Vary the position of the correct option. Do not number the options.
Score questions 10 (easy), 20 (medium) or 30 (hard).`

// GeneratorConfig tunes LLM quiz generation.
type GeneratorConfig struct {
	Topic       string
	Count       int
	MaxTokens   int
	Temperature float64
}

// DefaultGeneratorConfig returns the generation defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Topic:       "React",
		Count:       10,
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// Generator asks a language model for a fresh question set on each load.
type Generator struct {
	provider llm.Provider
	config   GeneratorConfig
}

// NewGenerator creates a Generator. Zero config fields take defaults.
func NewGenerator(p llm.Provider, cfg GeneratorConfig) *Generator {
	def := DefaultGeneratorConfig()
	if cfg.Topic == "" {
		cfg.Topic = def.Topic
	}
	if cfg.Count <= 0 {
		cfg.Count = def.Count
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	return &Generator{provider: p, config: cfg}
}

type generatedQuiz struct {
	Questions []struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectOption int      `json:"correct_option"`
		Points        int      `json:"points"`
	} `json:"questions"`
}

func (g *Generator) Load(ctx context.Context) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      g.prompt(),
		Schema:      quizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	var out generatedQuiz
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode generated quiz: %w", err)
	}

	qs := make([]quiz.Question, 0, len(out.Questions))
	for _, q := range out.Questions {
		qs = append(qs, quiz.Question{
			Text:          strings.TrimSpace(q.Question),
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			Points:        q.Points,
		})
	}
	if len(qs) > g.config.Count {
		qs = qs[:g.config.Count]
	}
	if err := quiz.ValidateQuestions(qs); err != nil {
		return nil, fmt.Errorf("generated quiz: %w", err)
	}
	return qs, nil
}

func (g *Generator) prompt() string {
	return fmt.Sprintf("Write a quiz of %d questions about %s. Mix easy, medium and hard questions.",
		g.config.Count, g.config.Topic)
}
