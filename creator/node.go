package creator

import "sort"

// Kind discriminates the three shapes a configuration node can take.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// Node is one node of a configuration tree. Nodes compare by pointer: two
// references to the same *Node denote the same node, while structurally equal
// trees built separately stay distinct. Shared subtrees (YAML anchors, a
// *Node used in several places) therefore survive parsing and drive the
// identity cache. Trees must be acyclic.
type Node struct {
	kind  Kind
	keys  []string
	vals  []*Node
	items []*Node
	value any
}

// MapEntry is one key/value pair of a mapping node.
type MapEntry struct {
	Key string
	Val *Node
}

// E builds a MapEntry.
func E(key string, val *Node) MapEntry { return MapEntry{Key: key, Val: val} }

// NewMap builds a mapping node preserving entry order.
func NewMap(entries ...MapEntry) *Node {
	n := &Node{kind: KindMapping}
	for _, e := range entries {
		n.keys = append(n.keys, e.Key)
		n.vals = append(n.vals, e.Val)
	}
	return n
}

// NewSeq builds a sequence node.
func NewSeq(items ...*Node) *Node {
	return &Node{kind: KindSequence, items: items}
}

// NewScalar wraps an arbitrary Go value as a scalar leaf.
func NewScalar(v any) *Node { return &Node{kind: KindScalar, value: v} }

// FromAny converts a plain Go value into a configuration tree. Map keys are
// sorted so conversion is deterministic. Every call allocates fresh nodes:
// trees built from equal inputs never share identity. A *Node input is
// returned as-is, which lets callers splice shared subtrees into a plain
// value before converting.
func FromAny(v any) *Node {
	switch t := v.(type) {
	case *Node:
		return t
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := &Node{kind: KindMapping}
		for _, k := range keys {
			n.keys = append(n.keys, k)
			n.vals = append(n.vals, FromAny(t[k]))
		}
		return n
	case []any:
		items := make([]*Node, 0, len(t))
		for _, item := range t {
			items = append(items, FromAny(item))
		}
		return NewSeq(items...)
	default:
		return NewScalar(v)
	}
}

// Kind reports the node's shape.
func (n *Node) Kind() Kind { return n.kind }

// Len returns the number of mapping entries or sequence items, zero for
// scalars.
func (n *Node) Len() int {
	switch n.kind {
	case KindMapping:
		return len(n.keys)
	case KindSequence:
		return len(n.items)
	default:
		return 0
	}
}

// Keys returns the mapping keys in declaration order.
func (n *Node) Keys() []string { return n.keys }

// Get looks up a mapping key.
func (n *Node) Get(key string) (*Node, bool) {
	for i, k := range n.keys {
		if k == key {
			return n.vals[i], true
		}
	}
	return nil, false
}

// Items returns the sequence items.
func (n *Node) Items() []*Node { return n.items }

// Value returns the scalar value.
func (n *Node) Value() any { return n.value }

// Plain converts the tree back into plain Go values: mappings become
// map[string]any, sequences []any and scalars their value. Sharing is lost;
// aliased subtrees convert once per reference.
func (n *Node) Plain() any {
	switch n.kind {
	case KindMapping:
		out := make(map[string]any, len(n.keys))
		for i, k := range n.keys {
			out[k] = n.vals[i].Plain()
		}
		return out
	case KindSequence:
		out := make([]any, len(n.items))
		for i, item := range n.items {
			out[i] = item.Plain()
		}
		return out
	default:
		return n.value
	}
}
