package field

import "strings"

// ID indexes a node inside its Tree.
type ID int

// NoParent marks the root record of a tree.
const NoParent ID = -1

type record struct {
	name     string
	typ      string
	parent   ID
	children []ID
	prefixes []string
	options  Options
}

// Tree stores field definitions as a flat slice of records linked by parent
// indices. Trees are immutable once built; every accessor is safe for
// concurrent use.
type Tree struct {
	records []record
}

// Len returns the number of nodes held by the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Root returns the root node. Callers must not call Root on an empty tree.
func (t *Tree) Root() Node {
	return Node{tree: t, id: 0}
}

// Node returns the view for id and reports whether it exists.
func (t *Tree) Node(id ID) (Node, bool) {
	if t == nil || id < 0 || int(id) >= len(t.records) {
		return Node{}, false
	}
	return Node{tree: t, id: id}, true
}

// Lookup resolves a dotted path relative to the root ("address.street"). The
// root name itself is not part of the path; an empty path returns the root.
func (t *Tree) Lookup(path string) (Node, bool) {
	if t.Len() == 0 {
		return Node{}, false
	}
	node := t.Root()
	path = strings.TrimSpace(path)
	if path == "" {
		return node, true
	}
	for _, segment := range strings.Split(path, ".") {
		child, ok := node.Child(segment)
		if !ok {
			return Node{}, false
		}
		node = child
	}
	return node, true
}

// Node is a read-only view over one field definition.
type Node struct {
	tree *Tree
	id   ID
}

func (n Node) rec() *record {
	return &n.tree.records[n.id]
}

// Valid reports whether the view points at a tree record.
func (n Node) Valid() bool {
	return n.tree != nil && n.id >= 0 && int(n.id) < len(n.tree.records)
}

// ID returns the node index inside its tree.
func (n Node) ID() ID { return n.id }

// Name returns the field name, unique among its siblings.
func (n Node) Name() string { return n.rec().name }

// Type returns the form type name used for transformer dispatch.
func (n Node) Type() string { return n.rec().typ }

// BlockPrefixes returns the block naming metadata, ordered from the most
// generic prefix to the most specific one.
func (n Node) BlockPrefixes() []string {
	return append([]string(nil), n.rec().prefixes...)
}

// Parent returns the enclosing node, if any.
func (n Node) Parent() (Node, bool) {
	parent := n.rec().parent
	if parent == NoParent {
		return Node{}, false
	}
	return Node{tree: n.tree, id: parent}, true
}

// IsRoot reports whether the node has no parent.
func (n Node) IsRoot() bool {
	return n.rec().parent == NoParent
}

// Root walks parent indices up to the root node.
func (n Node) Root() Node {
	current := n
	for {
		parent, ok := current.Parent()
		if !ok {
			return current
		}
		current = parent
	}
}

// Children returns the ordered child nodes.
func (n Node) Children() []Node {
	ids := n.rec().children
	if len(ids) == 0 {
		return nil
	}
	out := make([]Node, len(ids))
	for idx, id := range ids {
		out[idx] = Node{tree: n.tree, id: id}
	}
	return out
}

// Child returns the direct child with the given name.
func (n Node) Child(name string) (Node, bool) {
	for _, id := range n.rec().children {
		if n.tree.records[id].name == name {
			return Node{tree: n.tree, id: id}, true
		}
	}
	return Node{}, false
}

// Path joins the names from the root down to the node with dots. The root
// contributes its own name so error messages stay unambiguous.
func (n Node) Path() string {
	var segments []string
	current := n
	for {
		segments = append(segments, current.Name())
		parent, ok := current.Parent()
		if !ok {
			break
		}
		current = parent
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, ".")
}

// Options returns the option snapshot. The returned map must not be mutated.
func (n Node) Options() Options {
	return n.rec().options
}

// LookupOption returns the option value and whether it is present. A key
// holding nil counts as absent.
func (n Node) LookupOption(key string) (any, bool) {
	return n.rec().options.Lookup(key)
}

// Option returns the option value or def when absent.
func (n Node) Option(key string, def any) any {
	if value, ok := n.LookupOption(key); ok {
		return value
	}
	return def
}
