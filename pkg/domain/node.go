package domain

import (
	"github.com/aretw0/algebra/pkg/numeric"
)

// Node is a tagged expression tree node.
// A node exclusively owns its children: a subtree needed in two places must be
// cloned first. Each node keeps a pointer to its parent so it can be replaced
// in place.
type Node struct {
	tag      Tag
	children []*Node
	attrs    map[string]any
	parent   *Node
}

// New creates a node with the given children.
// Children are adopted as-is; a child that still sits in another node's list
// must belong to a node that is being discarded or overwritten.
func New(tag Tag, children ...*Node) *Node {
	n := &Node{tag: tag}
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

// Number creates a numeric leaf.
func Number(v numeric.Value) *Node {
	return &Node{tag: TagNumber, attrs: map[string]any{AttrValue: v}}
}

// Int creates an Exact numeric leaf.
func Int(i int64) *Node {
	return Number(numeric.Int(i))
}

// Decimal creates an Approximate numeric leaf from its decimal text.
func Decimal(s string, ctx numeric.Context) (*Node, error) {
	v, err := numeric.ParseApproximate(s, ctx)
	if err != nil {
		return nil, err
	}
	return Number(v), nil
}

// Symbol creates a named leaf.
func Symbol(name string) *Node {
	return &Node{tag: TagSymbol, attrs: map[string]any{AttrName: name}}
}

// Undefined creates the division-by-zero sentinel.
func Undefined() *Node {
	return &Node{tag: TagUndefined}
}

// Tag returns the operator or literal kind of the node.
func (n *Node) Tag() Tag { return n.tag }

// Parent returns the node holding n, or nil for a detached node.
func (n *Node) Parent() *Node {
	if n.parent != nil && n.parent.tag == tagRoot {
		return nil
	}
	return n.parent
}

// Attached reports whether n occupies a slot, including the invisible root slot.
func (n *Node) Attached() bool { return n.parent != nil }

// Len returns the number of children.
func (n *Node) Len() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) *Node {
	n.check(i, len(n.children))
	return n.children[i]
}

// Children returns a copy of the child list; the caller may modify it.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// IndexOf returns the position of c among n's children, or -1.
func (n *Node) IndexOf(c *Node) int {
	for i, x := range n.children {
		if x == c {
			return i
		}
	}
	return -1
}

func (n *Node) check(i, limit int) {
	if i < 0 || i >= limit {
		panic(&IndexError{Tag: n.tag, Index: i, Len: len(n.children)})
	}
}

func (n *Node) adopt(c *Node) {
	if c == nil {
		panic(&StructureError{Tag: n.tag, Reason: "nil child"})
	}
	c.parent = n
}

func (n *Node) release(c *Node) {
	if c.parent == n {
		c.parent = nil
	}
}

// AddChild appends c.
func (n *Node) AddChild(c *Node) {
	n.adopt(c)
	n.children = append(n.children, c)
}

// AddChildAt inserts c at position i, which may equal Len().
func (n *Node) AddChildAt(i int, c *Node) {
	n.check(i, len(n.children)+1)
	n.adopt(c)
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
}

// SetChild replaces the i-th child with c. The previous child is detached.
func (n *Node) SetChild(i int, c *Node) {
	n.check(i, len(n.children))
	old := n.children[i]
	n.adopt(c)
	n.children[i] = c
	if old != c {
		n.release(old)
	}
}

// RemoveChildAt detaches and returns the i-th child.
func (n *Node) RemoveChildAt(i int) *Node {
	n.check(i, len(n.children))
	old := n.children[i]
	n.children = append(n.children[:i], n.children[i+1:]...)
	n.release(old)
	return old
}

// ReplaceBy installs r in n's slot. After the call n is detached and must not
// be reduced further; r is the only valid reference to this position.
func (n *Node) ReplaceBy(r *Node) {
	p := n.parent
	if p == nil {
		panic(ErrNoParent)
	}
	p.SetChild(p.IndexOf(n), r)
}

// Clone returns a deep, parentless copy of the subtree.
// Numeric values are immutable and therefore shared.
func (n *Node) Clone() *Node {
	c := &Node{tag: n.tag}
	if n.attrs != nil {
		c.attrs = make(map[string]any, len(n.attrs))
		for k, v := range n.attrs {
			c.attrs[k] = v
		}
	}
	if len(n.children) > 0 {
		c.children = make([]*Node, len(n.children))
		for i, child := range n.children {
			cc := child.Clone()
			cc.parent = c
			c.children[i] = cc
		}
	}
	return c
}

// Get returns an attribute.
func (n *Node) Get(key string) (any, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// Set stores an attribute.
func (n *Node) Set(key string, v any) {
	if n.attrs == nil {
		n.attrs = make(map[string]any)
	}
	n.attrs[key] = v
}

// IsInternalNumber reports whether n is a numeric leaf.
func (n *Node) IsInternalNumber() bool {
	if n.tag != TagNumber || len(n.children) != 0 {
		return false
	}
	_, ok := n.attrs[AttrValue].(numeric.Value)
	return ok
}

// Value returns the number held by a numeric leaf.
func (n *Node) Value() (numeric.Value, bool) {
	v, ok := n.attrs[AttrValue].(numeric.Value)
	return v, ok
}

// SetValue stores the number of a numeric leaf.
func (n *Node) SetValue(v numeric.Value) {
	n.Set(AttrValue, v)
}

// Name returns the name of a symbol leaf.
func (n *Node) Name() string {
	s, _ := n.attrs[AttrName].(string)
	return s
}

// Slot places a parentless node into an invisible holder so that it can be
// replaced like any other child. The returned function detaches and returns
// whatever occupies the slot afterwards.
func Slot(n *Node) (release func() *Node) {
	if n.parent != nil {
		panic(&StructureError{Tag: n.tag, Reason: "node already has a parent"})
	}
	root := New(tagRoot, n)
	return func() *Node {
		out := root.children[0]
		out.parent = nil
		root.children = nil
		return out
	}
}

// Position identifies a child slot independently of its current occupant.
type Position struct {
	parent *Node
	index  int
}

// Position returns the slot n currently occupies.
// It panics with ErrNoParent for a detached node; use Slot first.
func (n *Node) Position() Position {
	if n.parent == nil {
		panic(ErrNoParent)
	}
	return Position{parent: n.parent, index: n.parent.IndexOf(n)}
}

// Node returns whatever occupies the slot now.
func (p Position) Node() *Node {
	return p.parent.Child(p.index)
}
