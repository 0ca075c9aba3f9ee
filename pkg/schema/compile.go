package schema

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonschema"
)

// Result aliases the evaluation result returned by Validate.
type Result = jsonschema.EvaluationResult

// Compile turns the fragment into an executable JSON Schema.
func (f Fragment) Compile() (*jsonschema.Schema, error) {
	if f == nil {
		return nil, nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("schema: marshal fragment: %w", err)
	}
	compiled, err := jsonschema.NewCompiler().Compile(data)
	if err != nil {
		return nil, fmt.Errorf("schema: compile fragment: %w", err)
	}
	return compiled, nil
}

// Validate checks value against the fragment. The value is normalised through
// a JSON round trip first so Go numeric types compare like decoded payloads.
func (f Fragment) Validate(value any) (*Result, error) {
	compiled, err := f.Compile()
	if err != nil {
		return nil, err
	}
	if compiled == nil {
		return nil, nil
	}
	normalised, err := normalise(value)
	if err != nil {
		return nil, err
	}
	return compiled.Validate(normalised), nil
}

func normalise(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("schema: marshal value: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("schema: unmarshal value: %w", err)
	}
	return out, nil
}
