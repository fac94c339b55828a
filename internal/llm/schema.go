package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a JSON Schema the model output must conform to. It is compiled
// once when created.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any

	compiled *jsonschema.Schema
}

// NewSchema compiles def. name should be kebab-case; it is used as the tool
// or schema name by providers.
func NewSchema(name, description string, def map[string]any) (*Schema, error) {
	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	return &Schema{
		Name:        name,
		Description: description,
		Definition:  def,
		compiled:    compiled,
	}, nil
}

// MustSchema is NewSchema for package-level schemas.
func MustSchema(name, description string, def map[string]any) *Schema {
	s, err := NewSchema(name, description, def)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks raw against the schema and returns a KindInvalidResponse
// error on mismatch.
func (s *Schema) Validate(raw []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &Error{Kind: KindInvalidResponse, Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := s.compiled.Validate(doc); err != nil {
		return &Error{Kind: KindInvalidResponse, Content: raw, Err: err}
	}
	return nil
}
