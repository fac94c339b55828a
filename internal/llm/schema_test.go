package llm

import (
	"errors"
	"testing"
)

var testSchema = MustSchema("pair", "a pair", map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":  map[string]any{"type": "string"},
		"count": map[string]any{"type": "integer", "minimum": 0},
	},
	"required":             []any{"name", "count"},
	"additionalProperties": false,
})

func TestSchemaValidate(t *testing.T) {
	tests := map[string]struct {
		raw     string
		wantErr bool
	}{
		"valid":          {`{"name":"a","count":2}`, false},
		"missing field":  {`{"name":"a"}`, true},
		"wrong type":     {`{"name":"a","count":"two"}`, true},
		"below minimum":  {`{"name":"a","count":-1}`, true},
		"extra property": {`{"name":"a","count":1,"x":true}`, true},
		"not json":       {`name: a`, true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := testSchema.Validate([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && KindOf(err) != KindInvalidResponse {
				t.Errorf("kind = %s, want invalid response", KindOf(err))
			}
		})
	}
}

func TestNewSchemaRejectsBadDefinition(t *testing.T) {
	_, err := NewSchema("bad", "", map[string]any{"type": 12})
	if err == nil {
		t.Fatal("expected compile error")
	}
	var e *Error
	if errors.As(err, &e) {
		t.Errorf("compile errors should not be provider errors: %v", err)
	}
}
