package schema

import "github.com/goliatone/go-formschema/pkg/field"

// Decorator enriches a generated fragment after the transformer pipeline has
// produced it.
type Decorator interface {
	Decorate(node field.Node, fragment Fragment) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(node field.Node, fragment Fragment) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(node field.Node, fragment Fragment) error {
	return fn(node, fragment)
}
