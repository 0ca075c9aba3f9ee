package transformer

import (
	"github.com/goliatone/go-formschema/pkg/field"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// Transformer maps one field node onto a schema fragment. Implementations
// call Enrich (directly or through the transformer they delegate to) and
// layer their own keys on top.
type Transformer interface {
	Transform(s *Scope, node field.Node) (schema.Fragment, error)
}

// Func adapts a plain function to the Transformer interface.
type Func func(s *Scope, node field.Node) (schema.Fragment, error)

// Transform executes the wrapped function.
func (fn Func) Transform(s *Scope, node field.Node) (schema.Fragment, error) {
	return fn(s, node)
}

// Scalar emits the base fragment with a fixed JSON type and optional format.
type Scalar struct {
	Type   string
	Format string
}

// Transform implements Transformer.
func (t Scalar) Transform(s *Scope, node field.Node) (schema.Fragment, error) {
	fragment, err := Enrich(s, node)
	if err != nil {
		return nil, err
	}
	if t.Type != "" {
		fragment[schema.KeyType] = t.Type
	}
	if t.Format != "" {
		fragment[schema.KeyFormat] = t.Format
	}
	return fragment, nil
}

// Array wraps the base fragment into an array of unique, unconstrained items.
type Array struct{}

// Transform implements Transformer.
func (Array) Transform(s *Scope, node field.Node) (schema.Fragment, error) {
	fragment, err := Enrich(s, node)
	if err != nil {
		return nil, err
	}
	fragment[schema.KeyType] = schema.TypeArray
	fragment[schema.KeyItems] = schema.Fragment{}
	// TODO: derive minItems/maxItems from collection constraints
	fragment[schema.KeyUniqueItems] = true
	return fragment, nil
}

// Object describes compound fields: every child is dispatched through the
// scope and stored under properties; children flagged required are listed.
type Object struct{}

// Transform implements Transformer.
func (Object) Transform(s *Scope, node field.Node) (schema.Fragment, error) {
	fragment, err := Enrich(s, node)
	if err != nil {
		return nil, err
	}
	fragment[schema.KeyType] = schema.TypeObject

	children := node.Children()
	properties := make(map[string]schema.Fragment, len(children))
	var required []string
	for _, child := range children {
		property, err := s.Transform(child)
		if err != nil {
			return nil, err
		}
		properties[child.Name()] = property
		if flag, ok := child.Option(field.OptionRequired, nil).(bool); ok && flag {
			required = append(required, child.Name())
		}
	}
	fragment[schema.KeyProperties] = properties
	if len(required) > 0 {
		fragment[schema.KeyRequired] = required
	}
	return fragment, nil
}
