package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// ExtensionOptions is the vendor extension that carries fragment options.
const ExtensionOptions = "x-options"

// DefaultVersion is the OpenAPI version written by NewDocument.
const DefaultVersion = "3.0.3"

// Export converts fragment into an OpenAPI schema. The fragment itself is not
// modified.
func Export(fragment schema.Fragment) (*openapi3.Schema, error) {
	if fragment == nil {
		return nil, errors.New("openapi: fragment is nil")
	}
	data, err := json.Marshal(rewrite(fragment))
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal fragment: %w", err)
	}
	out := openapi3.NewSchema()
	if err := out.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("openapi: decode schema: %w", err)
	}
	return out, nil
}

// Components exports every fragment under its name.
func Components(fragments map[string]schema.Fragment) (openapi3.Schemas, error) {
	names := make([]string, 0, len(fragments))
	for name := range fragments {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(openapi3.Schemas, len(fragments))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, errors.New("openapi: component name is required")
		}
		exported, err := Export(fragments[name])
		if err != nil {
			return nil, fmt.Errorf("openapi: component %q: %w", name, err)
		}
		out[name] = openapi3.NewSchemaRef("", exported)
	}
	return out, nil
}

// NewDocument wraps the exported fragments in a minimal OpenAPI document.
func NewDocument(title, version string, fragments map[string]schema.Fragment) (*openapi3.T, error) {
	schemas, err := Components(fragments)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(version) == "" {
		version = "1.0.0"
	}
	return &openapi3.T{
		OpenAPI: DefaultVersion,
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: schemas},
	}, nil
}

// Validate runs kin-openapi document validation.
func Validate(ctx context.Context, doc *openapi3.T) error {
	if doc == nil {
		return errors.New("openapi: document is nil")
	}
	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("openapi: validate document: %w", err)
	}
	return nil
}

// rewrite returns a copy of fragment with options renamed to the extension
// key at every nesting level.
func rewrite(fragment schema.Fragment) map[string]any {
	out := make(map[string]any, len(fragment))
	for key, value := range fragment {
		switch key {
		case schema.KeyOptions:
			out[ExtensionOptions] = value
		case schema.KeyProperties:
			props, ok := value.(map[string]schema.Fragment)
			if !ok {
				out[key] = value
				continue
			}
			rewritten := make(map[string]any, len(props))
			for name, prop := range props {
				rewritten[name] = rewrite(prop)
			}
			out[key] = rewritten
		case schema.KeyItems:
			if items, ok := value.(schema.Fragment); ok {
				out[key] = rewrite(items)
				continue
			}
			out[key] = value
		default:
			out[key] = value
		}
	}
	return out
}
