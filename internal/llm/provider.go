// Package llm talks to hosted language models that return structured JSON.
// It is used to author quiz question sets on demand.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a JSON document for a prompt.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the provider asks for structured output and the returned content
	// has been validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Request is a single-turn generation request.
type Request struct {
	System      string
	Prompt      string
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Response is the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // "end" or "max_tokens"
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names are passed through so full model IDs work too.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
