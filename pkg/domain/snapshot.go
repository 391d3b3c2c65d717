package domain

import (
	"reflect"
	"strings"

	"github.com/aretw0/algebra/pkg/numeric"
)

// Snapshot captures the shape of a node at one level: its tag and the
// identities of its children. Rules that forward must leave it unchanged.
type Snapshot struct {
	Tag      Tag
	Children []*Node
}

// Take records the current shape of n.
func Take(n *Node) Snapshot {
	return Snapshot{Tag: n.tag, Children: n.Children()}
}

// Same reports whether n still has the recorded tag, child count and child identities.
func (s Snapshot) Same(n *Node) bool {
	if s.Tag != n.tag || len(s.Children) != len(n.children) {
		return false
	}
	for i, c := range s.Children {
		if n.children[i] != c {
			return false
		}
	}
	return true
}

// Equal reports whether two trees are structurally equal: same tags, same
// attributes and pairwise equal children. Numbers compare by variant and value.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.tag != b.tag || len(a.children) != len(b.children) || len(a.attrs) != len(b.attrs) {
		return false
	}
	for k, av := range a.attrs {
		bv, ok := b.attrs[k]
		if !ok || !attrEqual(av, bv) {
			return false
		}
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

func attrEqual(a, b any) bool {
	if av, ok := a.(numeric.Value); ok {
		bv, ok := b.(numeric.Value)
		return ok && av.Equal(bv)
	}
	return reflect.DeepEqual(a, b)
}

// Walk visits n and its descendants in pre-order until fn returns false.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		Walk(c, fn)
	}
}

// String renders the tree in a compact functional form such as
// "Multiplication(2, Addition(x, y))". It is meant for logs and test
// failures, not for presentation.
func (n *Node) String() string {
	var sb strings.Builder
	n.format(&sb)
	return sb.String()
}

func (n *Node) format(sb *strings.Builder) {
	switch n.tag {
	case TagNumber:
		if v, ok := n.Value(); ok {
			sb.WriteString(v.String())
			return
		}
	case TagSymbol:
		sb.WriteString(n.Name())
		return
	}
	sb.WriteString(n.tag.Short())
	if len(n.children) == 0 {
		return
	}
	sb.WriteByte('(')
	for i, c := range n.children {
		if i > 0 {
			sb.WriteString(", ")
		}
		c.format(sb)
	}
	sb.WriteByte(')')
}
