package transformer

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formschema/pkg/field"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// Registry binds form type names to transformers. Lookup is by exact
// (case-insensitive, trimmed) name; derived types register their own entry
// pointing at the transformer they delegate to.
type Registry struct {
	mu           sync.RWMutex
	transformers map[string]Transformer
}

// NewEmptyRegistry creates a registry without any bindings.
func NewEmptyRegistry() *Registry {
	return &Registry{transformers: make(map[string]Transformer)}
}

// NewRegistry creates a registry with the builtin form types bound.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	registerBuiltins(r)
	return r
}

// Register binds name to t. Duplicate names return an error.
func (r *Registry) Register(name string, t Transformer) error {
	if t == nil {
		return fmt.Errorf("transformer: transformer for %q is required", name)
	}
	key := normalizeTypeName(name)
	if key == "" {
		return fmt.Errorf("transformer: type name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transformers[key]; exists {
		return fmt.Errorf("transformer: type %q already registered", key)
	}
	r.transformers[key] = t
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(name string, t Transformer) {
	if err := r.Register(name, t); err != nil {
		panic(err)
	}
}

// Get retrieves the transformer bound to name.
func (r *Registry) Get(name string) (Transformer, error) {
	key := normalizeTypeName(name)
	if key == "" {
		return nil, fmt.Errorf("%w: empty type name", ErrTypeNotRegistered)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.transformers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTypeNotRegistered, key)
	}
	return t, nil
}

// Has reports whether name is bound.
func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

// List returns the bound type names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.transformers))
	for name := range r.transformers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Transform builds the fragment for node, dispatching on node.Type(). The
// locale is extracted from the node's root once for the whole call.
func (r *Registry) Transform(env *Env, node field.Node) (schema.Fragment, error) {
	return NewScope(env, r, node).Transform(node)
}

// TransformAs builds the fragment for node using typeName instead of the
// node's declared type.
func (r *Registry) TransformAs(env *Env, typeName string, node field.Node) (schema.Fragment, error) {
	return NewScope(env, r, node).TransformAs(typeName, node)
}

// normalizeTypeName trims surrounding space only; type names are case
// sensitive.
func normalizeTypeName(name string) string {
	return strings.TrimSpace(name)
}

func registerBuiltins(r *Registry) {
	text := Scalar{Type: schema.TypeString}
	for _, name := range []string{"text", "textarea", "email", "password", "search", "url", "tel", "color", "hidden"} {
		r.MustRegister(name, text)
	}
	r.MustRegister("date", Scalar{Type: schema.TypeString, Format: "date"})
	r.MustRegister("datetime", Scalar{Type: schema.TypeString, Format: "date-time"})
	r.MustRegister("time", Scalar{Type: schema.TypeString, Format: "time"})

	r.MustRegister("integer", Scalar{Type: schema.TypeInteger})
	number := Scalar{Type: schema.TypeNumber}
	for _, name := range []string{"number", "money", "percent"} {
		r.MustRegister(name, number)
	}
	r.MustRegister("checkbox", Scalar{Type: schema.TypeBoolean})

	r.MustRegister("form", Object{})
	r.MustRegister("collection", Array{})
	r.MustRegister("choice", Choice{})
	r.MustRegister("currency", NewCurrency())
}
