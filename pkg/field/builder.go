package field

import (
	"errors"
	"fmt"
	"strings"
)

// Spec describes one node handed to the Builder.
type Spec struct {
	Name          string
	Type          string
	Options       Options
	BlockPrefixes []string
}

// Builder assembles a Tree. The first node added becomes the root; later
// nodes must reference an existing parent.
type Builder struct {
	records []record
	err     error
}

// NewBuilder returns an empty tree builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Root adds the root node. Calling Root twice records an error.
func (b *Builder) Root(spec Spec) ID {
	if len(b.records) > 0 {
		b.fail(errors.New("field builder: root already defined"))
		return 0
	}
	return b.add(NoParent, spec)
}

// Add appends a child under parent and returns its id.
func (b *Builder) Add(parent ID, spec Spec) ID {
	if parent < 0 || int(parent) >= len(b.records) {
		b.fail(fmt.Errorf("field builder: parent %d does not exist", parent))
		return NoParent
	}
	name := strings.TrimSpace(spec.Name)
	for _, sibling := range b.records[parent].children {
		if b.records[sibling].name == name {
			b.fail(fmt.Errorf("field builder: duplicate field %q under %q", name, b.records[parent].name))
			return NoParent
		}
	}
	return b.add(parent, spec)
}

func (b *Builder) add(parent ID, spec Spec) ID {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		b.fail(errors.New("field builder: field name is required"))
		return NoParent
	}
	typ := strings.TrimSpace(spec.Type)
	prefixes := append([]string(nil), spec.BlockPrefixes...)
	if len(prefixes) == 0 && typ != "" {
		prefixes = []string{typ}
	}

	id := ID(len(b.records))
	b.records = append(b.records, record{
		name:     name,
		typ:      typ,
		parent:   parent,
		prefixes: prefixes,
		options:  spec.Options.Clone(),
	})
	if parent != NoParent {
		b.records[parent].children = append(b.records[parent].children, id)
	}
	return id
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build returns the assembled tree or the first error recorded while adding
// nodes.
func (b *Builder) Build() (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.records) == 0 {
		return nil, errors.New("field builder: tree is empty")
	}
	records := make([]record, len(b.records))
	copy(records, b.records)
	return &Tree{records: records}, nil
}
