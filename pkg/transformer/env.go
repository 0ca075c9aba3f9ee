package transformer

import (
	"fmt"

	"github.com/goliatone/go-formschema/pkg/field"
	"github.com/goliatone/go-formschema/pkg/layout"
	"github.com/goliatone/go-formschema/pkg/logger"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/translation"
	"github.com/goliatone/go-formschema/pkg/widgets"
)

// TextResolver turns option values into display strings.
type TextResolver interface {
	Resolve(text any, params map[string]any, domains translation.Domains, locale string) string
}

// WidgetResolver derives the widget hint for a node; "" means undetermined.
type WidgetResolver interface {
	WidgetFor(node field.Node) string
}

// Env carries the process-wide collaborators shared by every transform. It is
// built once and must not be mutated while transforms run.
type Env struct {
	Text          TextResolver
	Widgets       WidgetResolver
	Layout        layout.Resolver
	DefaultDomain string
	Currencies    []string
	Logger        logger.Logger
}

func (e *Env) withDefaults() *Env {
	out := Env{}
	if e != nil {
		out = *e
	}
	if out.Text == nil {
		out.Text = translation.NewResolver(nil)
	}
	if out.Widgets == nil {
		out.Widgets = widgets.NewRegistry()
	}
	if out.Layout == nil {
		out.Layout = layout.Static("")
	}
	if out.DefaultDomain == "" {
		out.DefaultDomain = translation.DefaultDomain
	}
	if len(out.Currencies) == 0 {
		out.Currencies = DefaultCurrencies
	}
	if out.Logger == nil {
		out.Logger = logger.Nop()
	}
	return &out
}

// Scope is created per top-level transform. It fixes the locale extracted from
// the root node so nested transforms reuse it instead of walking the tree
// again.
type Scope struct {
	env      *Env
	registry *Registry
	locale   string
}

// NewScope prepares a transform scope for the tree containing node.
func NewScope(env *Env, registry *Registry, node field.Node) *Scope {
	return &Scope{
		env:      env.withDefaults(),
		registry: registry,
		locale:   translation.LocaleOf(node),
	}
}

// Env returns the collaborators, with defaults applied.
func (s *Scope) Env() *Env { return s.env }

// Locale returns the form locale ("" when unset).
func (s *Scope) Locale() string { return s.locale }

// Translate resolves text for node, reading translation parameters from the
// paramsKey option when non-empty.
func (s *Scope) Translate(node field.Node, text any, paramsKey string) string {
	var params map[string]any
	if paramsKey != "" {
		params, _ = field.StringMap(node.Option(paramsKey, nil))
	}
	return s.env.Text.Resolve(text, params, translation.DomainsFor(node, s.env.DefaultDomain), s.locale)
}

// Transform dispatches node through the registry by its type name.
func (s *Scope) Transform(node field.Node) (schema.Fragment, error) {
	return s.TransformAs(node.Type(), node)
}

// TransformAs dispatches node using an explicit type name.
func (s *Scope) TransformAs(typeName string, node field.Node) (schema.Fragment, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("%w: %q (field %q, no registry)", ErrTypeNotRegistered, typeName, node.Path())
	}
	t, err := s.registry.Get(typeName)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", node.Path(), err)
	}
	s.env.Logger.Debug("transform field", "field", node.Path(), "type", typeName)
	return t.Transform(s, node)
}
