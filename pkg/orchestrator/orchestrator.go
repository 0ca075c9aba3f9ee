package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formschema/pkg/field"
	"github.com/goliatone/go-formschema/pkg/layout"
	"github.com/goliatone/go-formschema/pkg/logger"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/transformer"
	"github.com/goliatone/go-formschema/pkg/translation"
	"github.com/goliatone/go-formschema/pkg/validation"
	"github.com/goliatone/go-formschema/pkg/widgets"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a transformer registry.
func WithRegistry(registry *transformer.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithTranslator resolves labels, help texts and attr strings through
// translator.
func WithTranslator(translator translation.Translator, opts ...translation.ResolverOption) Option {
	return func(o *Orchestrator) {
		o.text = translation.NewResolver(translator, opts...)
	}
}

// WithTextResolver replaces the text resolver entirely.
func WithTextResolver(resolver transformer.TextResolver) Option {
	return func(o *Orchestrator) {
		o.text = resolver
	}
}

// WithWidgets injects the widget resolver.
func WithWidgets(resolver transformer.WidgetResolver) Option {
	return func(o *Orchestrator) {
		o.widgets = resolver
	}
}

// WithLayout injects the layout resolver.
func WithLayout(resolver layout.Resolver) Option {
	return func(o *Orchestrator) {
		o.layout = resolver
	}
}

// WithDefaultDomain overrides the last-resort translation domain.
func WithDefaultDomain(domain string) Option {
	return func(o *Orchestrator) {
		o.defaultDomain = strings.TrimSpace(domain)
	}
}

// WithCurrencies sets the codes offered by currency fields without choices.
func WithCurrencies(codes ...string) Option {
	return func(o *Orchestrator) {
		o.currencies = append([]string(nil), codes...)
	}
}

// WithLogger injects a logger. The default discards output.
func WithLogger(l logger.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// WithDecorators registers decorators invoked for every node of the generated
// tree, parents before children.
func WithDecorators(decorators ...schema.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithTransformers registers fragment transformers that run after the
// decorators, in registration order.
func WithTransformers(transformers ...FragmentTransformer) Option {
	return func(o *Orchestrator) {
		if len(transformers) == 0 {
			return
		}
		o.transformers = append(o.transformers, transformers...)
	}
}

// WithValidation makes Generate fail when the fragment does not pass
// validation.ValidateFragment.
func WithValidation(enabled bool) Option {
	return func(o *Orchestrator) {
		o.validate = enabled
	}
}

// Orchestrator coordinates the full pipeline from field tree to schema
// fragment: dispatch through the transformer registry, node decorators,
// fragment transformers and optional validation.
type Orchestrator struct {
	registry      *transformer.Registry
	text          transformer.TextResolver
	widgets       transformer.WidgetResolver
	layout        layout.Resolver
	defaultDomain string
	currencies    []string
	logger        logger.Logger
	decorators    []schema.Decorator
	transformers  []FragmentTransformer
	validate      bool
	env           *transformer.Env
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs of one generation.
type Request struct {
	// Tree is the field tree to transform. Optional when FS and Path are set.
	Tree *field.Tree

	// FS and Path locate a definition document loaded when Tree is nil.
	FS   fs.FS
	Path string

	// Field selects a node by dotted path relative to the root. Empty selects
	// the root.
	Field string

	// Type overrides the selected node's type for dispatch.
	Type string
}

// Generate executes the load → transform → decorate → validate sequence and
// returns the resulting fragment.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (schema.Fragment, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, err := o.resolveTree(req)
	if err != nil {
		return nil, err
	}
	node, ok := tree.Lookup(req.Field)
	if !ok {
		return nil, fmt.Errorf("orchestrator: field %q not found", req.Field)
	}

	var fragment schema.Fragment
	if strings.TrimSpace(req.Type) != "" {
		fragment, err = o.registry.TransformAs(o.env, req.Type, node)
	} else {
		fragment, err = o.registry.Transform(o.env, node)
	}
	if err != nil {
		return nil, fmt.Errorf("orchestrator: transform: %w", err)
	}

	if err := o.applyDecorators(node, fragment); err != nil {
		return nil, err
	}
	if err := o.applyTransformers(ctx, fragment); err != nil {
		return nil, err
	}

	if o.validate {
		if err := validation.ValidateFragment(ctx, fragment).Err(); err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
	}

	o.logger.Debug("generated fragment", "field", node.Path(), "type", fragment.Type())
	return fragment, nil
}

// Registry exposes the transformer registry so callers can bind custom types.
func (o *Orchestrator) Registry() *transformer.Registry {
	return o.registry
}

func (o *Orchestrator) resolveTree(req Request) (*field.Tree, error) {
	if req.Tree != nil {
		return req.Tree, nil
	}
	if req.FS == nil {
		return nil, errors.New("orchestrator: tree or definition filesystem is required")
	}
	tree, err := field.LoadFS(req.FS, req.Path)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load definition: %w", err)
	}
	return tree, nil
}

func (o *Orchestrator) applyDecorators(node field.Node, fragment schema.Fragment) error {
	if len(o.decorators) == 0 || fragment == nil {
		return nil
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(node, fragment); err != nil {
			return fmt.Errorf("orchestrator: decorate %q: %w", node.Path(), err)
		}
	}
	props := fragment.Properties()
	for _, child := range node.Children() {
		if childFragment, ok := props[child.Name()]; ok {
			if err := o.applyDecorators(child, childFragment); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformers(ctx context.Context, fragment schema.Fragment) error {
	for _, t := range o.transformers {
		if t == nil {
			continue
		}
		if err := t.Transform(ctx, fragment); err != nil {
			return fmt.Errorf("orchestrator: transform fragment: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = transformer.NewRegistry()
	}
	if o.text == nil {
		o.text = translation.NewResolver(nil)
	}
	if o.widgets == nil {
		o.widgets = widgets.NewRegistry()
	}
	if o.layout == nil {
		o.layout = layout.Static(layout.DefaultName)
	}
	if o.defaultDomain == "" {
		o.defaultDomain = translation.DefaultDomain
	}
	if o.logger == nil {
		o.logger = logger.Nop()
	}
	o.env = &transformer.Env{
		Text:          o.text,
		Widgets:       o.widgets,
		Layout:        o.layout,
		DefaultDomain: o.defaultDomain,
		Currencies:    o.currencies,
		Logger:        o.logger,
	}
}
