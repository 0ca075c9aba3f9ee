package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// FragmentTransformer mutates a generated fragment after decorators ran.
type FragmentTransformer interface {
	Transform(ctx context.Context, fragment schema.Fragment) error
}

// FragmentTransformerFunc adapts plain functions to FragmentTransformer.
type FragmentTransformerFunc func(ctx context.Context, fragment schema.Fragment) error

// Transform executes the wrapped function when non-nil.
func (fn FragmentTransformerFunc) Transform(ctx context.Context, fragment schema.Fragment) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, fragment)
}

// PresetTransformer applies declarative patches loaded from a JSON or YAML
// document. Field paths are dotted and relative to the generated fragment:
//
//	options:
//	  layout: horizontal
//	fields:
//	  address.street:
//	    title: Street
//	    options: {widget: autocomplete}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Options map[string]any         `json:"options" yaml:"options"`
	Fields  map[string]presetPatch `json:"fields" yaml:"fields"`
}

type presetPatch struct {
	Title       *string        `json:"title" yaml:"title"`
	Description *string        `json:"description" yaml:"description"`
	Options     map[string]any `json:"options" yaml:"options"`
}

// NewPresetTransformer constructs a transformer from raw JSON or YAML bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		document = presetDocument{}
		if yamlErr := yaml.Unmarshal(data, &document); yamlErr != nil {
			return nil, fmt.Errorf("preset transformer: parse document: %w", yamlErr)
		}
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches onto fragment. A patch naming an unknown
// field is an error.
func (t *PresetTransformer) Transform(ctx context.Context, fragment schema.Fragment) error {
	if fragment == nil {
		return errors.New("preset transformer: fragment is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	mergeOptions(fragment, t.document.Options)

	paths := make([]string, 0, len(t.document.Fields))
	for path := range t.document.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := findFragmentByPath(fragment, path)
		if target == nil {
			return fmt.Errorf("preset transformer: field %q not found", path)
		}
		applyPatch(target, t.document.Fields[path])
	}
	return nil
}

func applyPatch(fragment schema.Fragment, patch presetPatch) {
	if patch.Title != nil {
		fragment[schema.KeyTitle] = *patch.Title
	}
	if patch.Description != nil {
		fragment[schema.KeyDescription] = *patch.Description
	}
	mergeOptions(fragment, patch.Options)
}

func mergeOptions(fragment schema.Fragment, options map[string]any) {
	if len(options) == 0 {
		return
	}
	dst := fragment.Options()
	for key, value := range options {
		dst[key] = value
	}
}

func findFragmentByPath(fragment schema.Fragment, path string) schema.Fragment {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	current := fragment
	for _, segment := range strings.Split(path, ".") {
		// "items" addresses array items; on objects it is an ordinary child name
		if segment == schema.KeyItems && current.Type() == schema.TypeArray {
			items, ok := current[schema.KeyItems].(schema.Fragment)
			if !ok {
				return nil
			}
			current = items
			continue
		}
		next, ok := current.Properties()[segment]
		if !ok {
			return nil
		}
		current = next
	}
	return current
}
