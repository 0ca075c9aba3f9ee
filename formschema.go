// Package formschema turns form field trees into JSON-Schema-like fragments
// annotated with rendering hints. The root package re-exports the most common
// entry points; the pkg/ subpackages hold the building blocks.
package formschema

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formschema/pkg/field"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/transformer"
)

// Fragment aliases schema.Fragment.
type Fragment = schema.Fragment

// ConfigurationError aliases the error returned for malformed field options.
type ConfigurationError = transformer.ConfigurationError

// ErrTypeNotRegistered is returned when a field type has no transformer.
var ErrTypeNotRegistered = transformer.ErrTypeNotRegistered

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate transforms the root of tree.
func Generate(ctx context.Context, tree *field.Tree, options ...orchestrator.Option) (Fragment, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{Tree: tree})
}

// GenerateFS loads the definition at path from fsys and transforms its root.
func GenerateFS(ctx context.Context, fsys fs.FS, path string, options ...orchestrator.Option) (Fragment, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{FS: fsys, Path: path})
}
