package field

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is the serialisable form of a field tree, typically authored as
// YAML:
//
//	name: user
//	type: form
//	options:
//	  attr: {lang: fr}
//	children:
//	  - name: email
//	    type: email
//	    options: {label: user.email}
type Definition struct {
	Name          string         `json:"name" yaml:"name"`
	Type          string         `json:"type" yaml:"type"`
	Options       map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
	BlockPrefixes []string       `json:"block_prefixes,omitempty" yaml:"block_prefixes,omitempty"`
	Children      []Definition   `json:"children,omitempty" yaml:"children,omitempty"`
}

// FromDefinition builds a Tree from a definition document.
func FromDefinition(def Definition) (*Tree, error) {
	b := NewBuilder()
	root := b.Root(specFromDefinition(def))
	addChildren(b, root, def.Children)
	return b.Build()
}

func addChildren(b *Builder, parent ID, children []Definition) {
	for _, child := range children {
		id := b.Add(parent, specFromDefinition(child))
		if id == NoParent {
			return
		}
		addChildren(b, id, child.Children)
	}
}

func specFromDefinition(def Definition) Spec {
	return Spec{
		Name:          def.Name,
		Type:          def.Type,
		Options:       Options(def.Options),
		BlockPrefixes: def.BlockPrefixes,
	}
}

// ParseDefinition decodes a JSON or YAML payload. JSON is attempted first so
// numeric values keep their encoding/json representation.
func ParseDefinition(data []byte, source string) (Definition, error) {
	var def Definition
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, fmt.Errorf("field: definition %s is empty", source)
	}
	if err := json.Unmarshal(data, &def); err == nil {
		return def, nil
	}
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("field: parse %s: %w", source, err)
	}
	return def, nil
}

// LoadFS reads a definition file from fsys and builds its tree.
func LoadFS(fsys fs.FS, path string) (*Tree, error) {
	if fsys == nil {
		return nil, errors.New("field: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("field: definition path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("field: read %s: %w", path, err)
	}
	def, err := ParseDefinition(data, path)
	if err != nil {
		return nil, err
	}
	tree, err := FromDefinition(def)
	if err != nil {
		return nil, fmt.Errorf("field: build %s: %w", path, err)
	}
	return tree, nil
}
