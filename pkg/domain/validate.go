package domain

import (
	"fmt"
)

// Validate checks the structural invariants of every node in the tree:
// fixed arities, non-empty variadic operators, well-formed leaves and
// consistent parent links. It returns the first violation found.
func Validate(n *Node) error {
	return validate(n, nil)
}

func validate(n *Node, parent *Node) error {
	if n == nil {
		return &StructureError{Tag: "", Reason: "nil node"}
	}
	if parent != nil && n.parent != parent {
		return &StructureError{Tag: n.tag, Reason: "child is shared or has a stale parent link"}
	}
	want := n.tag.arity()
	switch {
	case n.tag == tagRoot:
		return &StructureError{Tag: n.tag, Reason: "root slot inside a tree"}
	case want < 0 && len(n.children) == 0:
		return &StructureError{Tag: n.tag, Reason: "needs at least one child"}
	case want >= 0 && len(n.children) != want:
		return &StructureError{Tag: n.tag, Reason: fmt.Sprintf("expects %d children, has %d", want, len(n.children))}
	}
	switch n.tag {
	case TagNumber:
		if !n.IsInternalNumber() || len(n.attrs) != 1 {
			return &StructureError{Tag: n.tag, Reason: "numeric leaf must hold exactly a Value"}
		}
	case TagSymbol:
		if n.Name() == "" {
			return &StructureError{Tag: n.tag, Reason: "symbol without a name"}
		}
	case TagNegative, TagAddition, TagMultiplication, TagDivision, TagExponentiation, TagNumeric, TagUndefined:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTag, n.tag)
	}
	for _, c := range n.children {
		if err := validate(c, n); err != nil {
			return err
		}
	}
	return nil
}
